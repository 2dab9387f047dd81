package leave

import (
	"context"
)

type LeaveService interface {
	// Lifecycle
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID, approverID string) error
	RefuseLeaveRequest(ctx context.Context, req RefuseLeaveRequestRequest) error
	CancelLeaveRequest(ctx context.Context, requestID, callerID string) error
	// Read side
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	ListPendingLeaveRequests(ctx context.Context) ([]LeaveRequestResponse, error)
	ListPendingLeaveRequestsByTeam(ctx context.Context, teamID string) ([]LeaveRequestResponse, error)
	ListLeaveRequestsByPeriod(ctx context.Context, filter PeriodFilter) ([]LeaveRequestResponse, error)
}

// ConflictEvaluator runs the staffing rules. Pure read side: it never
// mutates state and a collaborator lookup failure propagates as an
// error rather than being reported as "no conflicts".
type ConflictEvaluator interface {
	Evaluate(ctx context.Context, request LeaveRequest) ([]Conflict, error)
	EvaluateMany(ctx context.Context, requests []LeaveRequest) (map[string][]Conflict, error)
	// EvaluateRequest is Evaluate keyed by id, for the review endpoint.
	EvaluateRequest(ctx context.Context, requestID string) ([]Conflict, error)
	// EvaluatePending evaluates the whole pending queue in one pass.
	EvaluatePending(ctx context.Context) ([]ReviewItemResponse, error)
}
