package leave

import (
	"time"

	"github.com/solacehr/leave-backend-go/internal/pkg/daterange"
)

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

// Paid reports whether approving this type deducts from the owner's
// leave balance. Unpaid leave never touches the balance.
func (t LeaveType) Paid() bool {
	return t != LeaveTypeUnpaid
}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRefused  LeaveStatus = "refused"
)

// LeaveRequest entity.
//
// Lifecycle: created pending by its owner, decided exactly once
// (approved or refused, approver attached), deletable only while
// pending. approved_by is set iff the request is no longer pending.
type LeaveRequest struct {
	ID     string
	UserID string
	Type   LeaveType

	StartDate time.Time
	EndDate   time.Time

	Status          LeaveStatus
	Reason          *string
	MedicalFile     *string
	ApprovedBy      *string
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	UserName *string
}

// DurationDays is the inclusive day count of [StartDate, EndDate].
func (r LeaveRequest) DurationDays() int {
	return daterange.Days(r.StartDate, r.EndDate)
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveStatusPending
}

// OverlapsRange reports whether the request intersects [start, end].
func (r LeaveRequest) OverlapsRange(start, end time.Time) bool {
	return daterange.Overlaps(r.StartDate, r.EndDate, start, end)
}

// AbsenceWindow is one approved leave span returned by the team-set
// range query the conflict evaluators consume.
type AbsenceWindow struct {
	UserID    string
	TeamID    string
	StartDate time.Time
	EndDate   time.Time
}
