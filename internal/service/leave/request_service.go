package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
)

// RequestService drives the leave request lifecycle:
// pending -> approved | refused, with cancellation only while pending.
type RequestService struct {
	tx       leave.TxRunner
	requests leave.LeaveRequestRepository
	users    user.UserRepository
}

func NewRequestService(tx leave.TxRunner, requests leave.LeaveRequestRepository, users user.UserRepository) *RequestService {
	return &RequestService{
		tx:       tx,
		requests: requests,
		users:    users,
	}
}

func (s *RequestService) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	hasOverlap, err := s.requests.HasOverlapping(ctx, req.UserID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
	}

	request := leave.LeaveRequest{
		UserID:      req.UserID,
		Type:        leave.LeaveType(req.Type),
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		MedicalFile: req.MedicalFile,
		Status:      leave.LeaveStatusPending,
	}

	if request.Type.Paid() {
		owner, err := s.users.GetByID(ctx, req.UserID)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get request owner: %w", err)
		}
		if owner.LeaveBalance < request.DurationDays() {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
		}
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// ApproveLeaveRequest transitions the request to approved and, for paid
// types, deducts the owner's balance. Both effects commit together or
// not at all. The balance is re-checked here even though submission
// already validated it: the conditional decrement keeps the balance
// non-negative when other approvals landed in between.
func (s *RequestService) ApproveLeaveRequest(ctx context.Context, requestID, approverID string) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get leave request: %w", err)
		}

		decided, err := s.requests.MarkDecided(ctx, requestID, leave.LeaveStatusApproved, approverID, nil)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if !decided {
			return leave.ErrAlreadyDecided
		}

		if request.Type.Paid() {
			deducted, err := s.users.DeductBalance(ctx, request.UserID, request.DurationDays())
			if err != nil {
				return fmt.Errorf("failed to deduct leave balance: %w", err)
			}
			if !deducted {
				return leave.ErrInsufficientBalance
			}
		}

		return nil
	})
}

func (s *RequestService) RefuseLeaveRequest(ctx context.Context, req leave.RefuseLeaveRequestRequest) error {
	if _, err := s.requests.GetByID(ctx, req.RequestID); err != nil {
		return fmt.Errorf("failed to get leave request: %w", err)
	}

	decided, err := s.requests.MarkDecided(ctx, req.RequestID, leave.LeaveStatusRefused, req.ApproverID, req.Reason)
	if err != nil {
		return fmt.Errorf("failed to refuse leave request: %w", err)
	}
	if !decided {
		return leave.ErrAlreadyDecided
	}

	return nil
}

func (s *RequestService) CancelLeaveRequest(ctx context.Context, requestID, callerID string) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get leave request: %w", err)
	}

	if request.UserID != callerID {
		return leave.ErrNotRequestOwner
	}

	deleted, err := s.requests.DeletePending(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to cancel leave request: %w", err)
	}
	if !deleted {
		return leave.ErrNotCancellable
	}

	return nil
}

func (s *RequestService) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(request), nil
}

func (s *RequestService) ListMyLeaveRequests(ctx context.Context, userID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

func (s *RequestService) ListPendingLeaveRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return toResponses(requests), nil
}

func (s *RequestService) ListPendingLeaveRequestsByTeam(ctx context.Context, teamID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requests.ListPendingByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests for team: %w", err)
	}
	return toResponses(requests), nil
}

func (s *RequestService) ListLeaveRequestsByPeriod(ctx context.Context, filter leave.PeriodFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := time.Parse("2006-01-02", filter.StartDate)
	endDate, _ := time.Parse("2006-01-02", filter.EndDate)

	requests, err := s.requests.ListByPeriod(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by period: %w", err)
	}
	return toResponses(requests), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return responses
}

var _ leave.LeaveService = (*RequestService)(nil)
