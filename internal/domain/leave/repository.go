package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for the leave_requests table.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	ListPendingByTeam(ctx context.Context, teamID string) ([]LeaveRequest, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]LeaveRequest, error)

	// HasOverlapping reports whether the user already holds a
	// non-refused request intersecting [start, end].
	HasOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error)

	// MarkDecided moves a pending request to a terminal status,
	// attaching the approver. Returns false when the request was not
	// pending (the compare-and-swap lost).
	MarkDecided(ctx context.Context, id string, status LeaveStatus, approverID string, rejectionReason *string) (bool, error)

	// DeletePending removes the request only while it is pending.
	// Returns false when no pending row matched.
	DeletePending(ctx context.Context, id string) (bool, error)

	// ListApprovedOverlapping returns every approved leave held by a
	// user of any team in teamIDs whose range intersects [start, end].
	// This is the single query the batch evaluator depends on.
	ListApprovedOverlapping(ctx context.Context, teamIDs []string, start, end time.Time) ([]AbsenceWindow, error)
}

// TxRunner executes fn atomically. Repository calls made with the
// context fn receives run inside the same transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
