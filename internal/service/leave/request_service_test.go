package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
	"github.com/solacehr/leave-backend-go/internal/pkg/validator"
)

func TestRequestService_CreateLeaveRequest(t *testing.T) {
	ctx := context.Background()

	createReq := func() leave.CreateLeaveRequestRequest {
		return leave.CreateLeaveRequestRequest{
			UserID:    "u1",
			Type:      string(leave.LeaveTypeAnnual),
			StartDate: "2026-03-10",
			EndDate:   "2026-03-14",
		}
	}

	t.Run("success", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			createFn: func(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
				r.ID = "lr-1"
				return r, nil
			},
		}
		users := &fakeUserRepo{
			getByIDFn: func(_ context.Context, id string) (user.User, error) {
				return user.User{ID: id, LeaveBalance: 20}, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)

		res, err := svc.CreateLeaveRequest(ctx, createReq())

		require.NoError(t, err)
		assert.Equal(t, "lr-1", res.ID)
		assert.Equal(t, string(leave.LeaveStatusPending), res.Status)
		assert.Equal(t, 5, res.DurationDays)
	})

	t.Run("end date before start date fails validation", func(t *testing.T) {
		svc := NewRequestService(fakeTxRunner{}, &fakeLeaveRequestRepo{}, &fakeUserRepo{})
		req := createReq()
		req.EndDate = "2026-03-09"

		_, err := svc.CreateLeaveRequest(ctx, req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "end_date")
	})

	t.Run("unknown leave type fails validation", func(t *testing.T) {
		svc := NewRequestService(fakeTxRunner{}, &fakeLeaveRequestRepo{}, &fakeUserRepo{})
		req := createReq()
		req.Type = "sabbatical"

		_, err := svc.CreateLeaveRequest(ctx, req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "type")
	})

	t.Run("sick leave requires a medical file", func(t *testing.T) {
		svc := NewRequestService(fakeTxRunner{}, &fakeLeaveRequestRepo{}, &fakeUserRepo{})
		req := createReq()
		req.Type = string(leave.LeaveTypeSick)

		_, err := svc.CreateLeaveRequest(ctx, req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "medical_file")
	})

	t.Run("overlapping own request is rejected", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			hasOverlappingFn: func(context.Context, string, time.Time, time.Time) (bool, error) {
				return true, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, &fakeUserRepo{})

		_, err := svc.CreateLeaveRequest(ctx, createReq())

		assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
	})

	t.Run("insufficient balance is rejected at submission", func(t *testing.T) {
		users := &fakeUserRepo{
			getByIDFn: func(_ context.Context, id string) (user.User, error) {
				return user.User{ID: id, LeaveBalance: 4}, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, &fakeLeaveRequestRepo{}, users)

		// 5 days requested against a balance of 4
		_, err := svc.CreateLeaveRequest(ctx, createReq())

		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("unpaid leave ignores the balance", func(t *testing.T) {
		created := false
		requests := &fakeLeaveRequestRepo{
			createFn: func(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
				created = true
				return r, nil
			},
		}
		users := &fakeUserRepo{
			getByIDFn: func(_ context.Context, id string) (user.User, error) {
				return user.User{ID: id, LeaveBalance: 0}, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)
		req := createReq()
		req.Type = string(leave.LeaveTypeUnpaid)

		_, err := svc.CreateLeaveRequest(ctx, req)

		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestRequestService_ApproveLeaveRequest(t *testing.T) {
	ctx := context.Background()

	paidRequest := leave.LeaveRequest{
		ID:        "lr-1",
		UserID:    "u1",
		Type:      leave.LeaveTypeAnnual,
		StartDate: day(10),
		EndDate:   day(14),
		Status:    leave.LeaveStatusPending,
	}

	t.Run("approves and deducts the balance once", func(t *testing.T) {
		var deductedDays []int
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return paidRequest, nil
			},
			markDecidedFn: func(_ context.Context, id string, status leave.LeaveStatus, approverID string, reason *string) (bool, error) {
				assert.Equal(t, leave.LeaveStatusApproved, status)
				assert.Equal(t, "hr-1", approverID)
				assert.Nil(t, reason)
				return true, nil
			},
		}
		users := &fakeUserRepo{
			deductBalanceFn: func(_ context.Context, id string, days int) (bool, error) {
				assert.Equal(t, "u1", id)
				deductedDays = append(deductedDays, days)
				return true, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)

		err := svc.ApproveLeaveRequest(ctx, "lr-1", "hr-1")

		require.NoError(t, err)
		assert.Equal(t, []int{5}, deductedDays)
	})

	t.Run("second decision loses the compare-and-swap", func(t *testing.T) {
		deducted := 0
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				approved := paidRequest
				approved.Status = leave.LeaveStatusApproved
				return approved, nil
			},
			markDecidedFn: func(context.Context, string, leave.LeaveStatus, string, *string) (bool, error) {
				return false, nil
			},
		}
		users := &fakeUserRepo{
			deductBalanceFn: func(context.Context, string, int) (bool, error) {
				deducted++
				return true, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)

		err := svc.ApproveLeaveRequest(ctx, "lr-1", "hr-1")

		assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
		assert.Equal(t, 0, deducted)
	})

	t.Run("unpaid leave keeps the balance untouched", func(t *testing.T) {
		deducted := 0
		unpaid := paidRequest
		unpaid.Type = leave.LeaveTypeUnpaid
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return unpaid, nil
			},
		}
		users := &fakeUserRepo{
			deductBalanceFn: func(context.Context, string, int) (bool, error) {
				deducted++
				return true, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)

		err := svc.ApproveLeaveRequest(ctx, "lr-1", "hr-1")

		require.NoError(t, err)
		assert.Equal(t, 0, deducted)
	})

	t.Run("balance drained since submission aborts the approval", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return paidRequest, nil
			},
		}
		users := &fakeUserRepo{
			deductBalanceFn: func(context.Context, string, int) (bool, error) {
				return false, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)

		err := svc.ApproveLeaveRequest(ctx, "lr-1", "hr-1")

		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})
}

func TestRequestService_RefuseLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses with a reason and no deduction", func(t *testing.T) {
		deducted := 0
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return leave.LeaveRequest{ID: "lr-1", Status: leave.LeaveStatusPending}, nil
			},
			markDecidedFn: func(_ context.Context, id string, status leave.LeaveStatus, approverID string, reason *string) (bool, error) {
				assert.Equal(t, leave.LeaveStatusRefused, status)
				require.NotNil(t, reason)
				assert.Equal(t, "short staffed", *reason)
				return true, nil
			},
		}
		users := &fakeUserRepo{
			deductBalanceFn: func(context.Context, string, int) (bool, error) {
				deducted++
				return true, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, users)

		err := svc.RefuseLeaveRequest(ctx, leave.RefuseLeaveRequestRequest{
			RequestID:  "lr-1",
			ApproverID: "hr-1",
			Reason:     strPtr("short staffed"),
		})

		require.NoError(t, err)
		assert.Equal(t, 0, deducted)
	})

	t.Run("already decided request cannot be refused", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return leave.LeaveRequest{ID: "lr-1", Status: leave.LeaveStatusApproved}, nil
			},
			markDecidedFn: func(context.Context, string, leave.LeaveStatus, string, *string) (bool, error) {
				return false, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, &fakeUserRepo{})

		err := svc.RefuseLeaveRequest(ctx, leave.RefuseLeaveRequestRequest{RequestID: "lr-1", ApproverID: "hr-1"})

		assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
	})

	t.Run("missing request propagates not found", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, &fakeUserRepo{})

		err := svc.RefuseLeaveRequest(ctx, leave.RefuseLeaveRequestRequest{RequestID: "lr-x", ApproverID: "hr-1"})

		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestRequestService_CancelLeaveRequest(t *testing.T) {
	ctx := context.Background()

	pending := leave.LeaveRequest{ID: "lr-1", UserID: "u1", Status: leave.LeaveStatusPending}

	t.Run("owner cancels a pending request", func(t *testing.T) {
		deleted := false
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return pending, nil
			},
			deletePendingFn: func(_ context.Context, id string) (bool, error) {
				deleted = true
				return true, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, &fakeUserRepo{})

		err := svc.CancelLeaveRequest(ctx, "lr-1", "u1")

		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("someone else's request cannot be cancelled", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				return pending, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, &fakeUserRepo{})

		err := svc.CancelLeaveRequest(ctx, "lr-1", "u2")

		assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
	})

	t.Run("decided request is no longer cancellable", func(t *testing.T) {
		requests := &fakeLeaveRequestRepo{
			getByIDFn: func(context.Context, string) (leave.LeaveRequest, error) {
				approved := pending
				approved.Status = leave.LeaveStatusApproved
				return approved, nil
			},
			deletePendingFn: func(context.Context, string) (bool, error) {
				return false, nil
			},
		}
		svc := NewRequestService(fakeTxRunner{}, requests, &fakeUserRepo{})

		err := svc.CancelLeaveRequest(ctx, "lr-1", "u1")

		assert.ErrorIs(t, err, leave.ErrNotCancellable)
	})
}
