package leave

import (
	"context"
	"time"

	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/domain/team"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
)

// Hand-written fakes with function fields. Each method delegates to its
// field when set and returns zero values otherwise, so tests only wire
// the calls they care about.

type fakeLeaveRequestRepo struct {
	createFn                  func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error)
	getByIDFn                 func(ctx context.Context, id string) (leave.LeaveRequest, error)
	listByUserFn              func(ctx context.Context, userID string) ([]leave.LeaveRequest, error)
	listPendingFn             func(ctx context.Context) ([]leave.LeaveRequest, error)
	listPendingByTeamFn       func(ctx context.Context, teamID string) ([]leave.LeaveRequest, error)
	listByPeriodFn            func(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error)
	hasOverlappingFn          func(ctx context.Context, userID string, start, end time.Time) (bool, error)
	markDecidedFn             func(ctx context.Context, id string, status leave.LeaveStatus, approverID string, rejectionReason *string) (bool, error)
	deletePendingFn           func(ctx context.Context, id string) (bool, error)
	listApprovedOverlappingFn func(ctx context.Context, teamIDs []string, start, end time.Time) ([]leave.AbsenceWindow, error)
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if f.createFn != nil {
		return f.createFn(ctx, request)
	}
	return leave.LeaveRequest{}, nil
}

func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return leave.LeaveRequest{}, nil
}

func (f *fakeLeaveRequestRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepo) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.listPendingFn != nil {
		return f.listPendingFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepo) ListPendingByTeam(ctx context.Context, teamID string) ([]leave.LeaveRequest, error) {
	if f.listPendingByTeamFn != nil {
		return f.listPendingByTeamFn(ctx, teamID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	if f.listByPeriodFn != nil {
		return f.listByPeriodFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepo) HasOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	if f.hasOverlappingFn != nil {
		return f.hasOverlappingFn(ctx, userID, start, end)
	}
	return false, nil
}

func (f *fakeLeaveRequestRepo) MarkDecided(ctx context.Context, id string, status leave.LeaveStatus, approverID string, rejectionReason *string) (bool, error) {
	if f.markDecidedFn != nil {
		return f.markDecidedFn(ctx, id, status, approverID, rejectionReason)
	}
	return true, nil
}

func (f *fakeLeaveRequestRepo) DeletePending(ctx context.Context, id string) (bool, error) {
	if f.deletePendingFn != nil {
		return f.deletePendingFn(ctx, id)
	}
	return true, nil
}

func (f *fakeLeaveRequestRepo) ListApprovedOverlapping(ctx context.Context, teamIDs []string, start, end time.Time) ([]leave.AbsenceWindow, error) {
	if f.listApprovedOverlappingFn != nil {
		return f.listApprovedOverlappingFn(ctx, teamIDs, start, end)
	}
	return nil, nil
}

type fakeUserRepo struct {
	getByIDFn       func(ctx context.Context, id string) (user.User, error)
	getByIDsFn      func(ctx context.Context, ids []string) (map[string]user.User, error)
	deductBalanceFn func(ctx context.Context, id string, days int) (bool, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]user.User, error) {
	if f.getByIDsFn != nil {
		return f.getByIDsFn(ctx, ids)
	}
	return map[string]user.User{}, nil
}

func (f *fakeUserRepo) DeductBalance(ctx context.Context, id string, days int) (bool, error) {
	if f.deductBalanceFn != nil {
		return f.deductBalanceFn(ctx, id, days)
	}
	return true, nil
}

type fakeTeamRepo struct {
	getByIDFn                   func(ctx context.Context, id string) (team.Team, error)
	countActiveMembersFn        func(ctx context.Context, teamID string) (int, error)
	countActiveMembersByTeamsFn func(ctx context.Context, teamIDs []string) (map[string]int, error)
	getLeadFn                   func(ctx context.Context, teamID string) (user.User, error)
	getLeadsByTeamsFn           func(ctx context.Context, teamIDs []string) (map[string]user.User, error)
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id string) (team.Team, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return team.Team{}, team.ErrTeamNotFound
}

func (f *fakeTeamRepo) CountActiveMembers(ctx context.Context, teamID string) (int, error) {
	if f.countActiveMembersFn != nil {
		return f.countActiveMembersFn(ctx, teamID)
	}
	return 0, nil
}

func (f *fakeTeamRepo) CountActiveMembersByTeams(ctx context.Context, teamIDs []string) (map[string]int, error) {
	if f.countActiveMembersByTeamsFn != nil {
		return f.countActiveMembersByTeamsFn(ctx, teamIDs)
	}
	return map[string]int{}, nil
}

func (f *fakeTeamRepo) GetLead(ctx context.Context, teamID string) (user.User, error) {
	if f.getLeadFn != nil {
		return f.getLeadFn(ctx, teamID)
	}
	return user.User{}, team.ErrNoTeamLead
}

func (f *fakeTeamRepo) GetLeadsByTeams(ctx context.Context, teamIDs []string) (map[string]user.User, error) {
	if f.getLeadsByTeamsFn != nil {
		return f.getLeadsByTeamsFn(ctx, teamIDs)
	}
	return map[string]user.User{}, nil
}

// fakeTxRunner runs fn directly; repository fakes are in-memory so
// there is nothing to commit or roll back.
type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
