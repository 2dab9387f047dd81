package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/domain/team"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
)

// ConflictService evaluates the staffing rules for leave requests.
// Evaluation is a pure read: it never mutates state, never blocks a
// decision, and multiple evaluations may run concurrently.
type ConflictService struct {
	requests leave.LeaveRequestRepository
	users    user.UserRepository
	teams    team.TeamRepository
}

func NewConflictService(requests leave.LeaveRequestRepository, users user.UserRepository, teams team.TeamRepository) *ConflictService {
	return &ConflictService{
		requests: requests,
		users:    users,
		teams:    teams,
	}
}

// Evaluate runs the rules for a single request. A requester without a
// team evaluates to no conflicts; a failed collaborator lookup is an
// error, never an empty result.
func (s *ConflictService) Evaluate(ctx context.Context, request leave.LeaveRequest) ([]leave.Conflict, error) {
	requester, err := s.users.GetByID(ctx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requester: %w", err)
	}
	if requester.TeamID == nil {
		return []leave.Conflict{}, nil
	}
	teamID := *requester.TeamID

	size, err := s.teams.CountActiveMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count team members: %w", err)
	}

	leadID := ""
	lead, err := s.teams.GetLead(ctx, teamID)
	switch {
	case err == nil:
		leadID = lead.ID
	case errors.Is(err, team.ErrNoTeamLead):
		// rule 3 simply has nothing to match against
	default:
		return nil, fmt.Errorf("failed to get team lead: %w", err)
	}

	windows, err := s.requests.ListApprovedOverlapping(ctx, []string{teamID}, request.StartDate, request.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved overlapping leaves: %w", err)
	}

	return evaluateRules(request, requester.Role, teamSnapshot{
		Size:     size,
		LeadID:   leadID,
		Absences: windows,
	}), nil
}

// EvaluateMany runs the same rules over a whole collection with a
// fixed number of queries: one user lookup, one grouped member count,
// one lead lookup, and one approved-leave fetch over the union window
// [min(start), max(end)]. Per-request filtering happens in memory, so
// the round-trip count does not grow with the queue.
func (s *ConflictService) EvaluateMany(ctx context.Context, requests []leave.LeaveRequest) (map[string][]leave.Conflict, error) {
	results := make(map[string][]leave.Conflict, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	userIDs := make([]string, 0, len(requests))
	seenUser := make(map[string]bool)
	for _, r := range requests {
		if !seenUser[r.UserID] {
			seenUser[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
	}

	owners, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get request owners: %w", err)
	}

	teamIDs := make([]string, 0, len(owners))
	seenTeam := make(map[string]bool)
	for _, r := range requests {
		owner, ok := owners[r.UserID]
		if !ok {
			return nil, fmt.Errorf("request %s: %w", r.ID, user.ErrUserNotFound)
		}
		if owner.TeamID != nil && !seenTeam[*owner.TeamID] {
			seenTeam[*owner.TeamID] = true
			teamIDs = append(teamIDs, *owner.TeamID)
		}
	}

	// Nobody is on a team: nothing can conflict.
	if len(teamIDs) == 0 {
		for _, r := range requests {
			results[r.ID] = []leave.Conflict{}
		}
		return results, nil
	}

	sizes, err := s.teams.CountActiveMembersByTeams(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count team members: %w", err)
	}

	leads, err := s.teams.GetLeadsByTeams(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get team leads: %w", err)
	}

	windowStart, windowEnd := unionWindow(requests)
	windows, err := s.requests.ListApprovedOverlapping(ctx, teamIDs, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved overlapping leaves: %w", err)
	}

	byTeam := make(map[string][]leave.AbsenceWindow)
	for _, w := range windows {
		byTeam[w.TeamID] = append(byTeam[w.TeamID], w)
	}

	for _, r := range requests {
		owner := owners[r.UserID]
		if owner.TeamID == nil {
			results[r.ID] = []leave.Conflict{}
			continue
		}
		teamID := *owner.TeamID

		leadID := ""
		if lead, ok := leads[teamID]; ok {
			leadID = lead.ID
		}

		results[r.ID] = evaluateRules(r, owner.Role, teamSnapshot{
			Size:     sizes[teamID],
			LeadID:   leadID,
			Absences: byTeam[teamID],
		})
	}

	return results, nil
}

func (s *ConflictService) EvaluateRequest(ctx context.Context, requestID string) ([]leave.Conflict, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(ctx, request)
}

// EvaluatePending evaluates the whole pending queue, preserving queue
// order (oldest first).
func (s *ConflictService) EvaluatePending(ctx context.Context) ([]leave.ReviewItemResponse, error) {
	pending, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	conflicts, err := s.EvaluateMany(ctx, pending)
	if err != nil {
		return nil, err
	}

	items := make([]leave.ReviewItemResponse, 0, len(pending))
	for _, r := range pending {
		items = append(items, leave.ReviewItemResponse{
			Request:   leave.ToResponse(r),
			Conflicts: conflicts[r.ID],
		})
	}
	return items, nil
}

// unionWindow returns [min(start), max(end)] over the requests.
func unionWindow(requests []leave.LeaveRequest) (time.Time, time.Time) {
	start, end := requests[0].StartDate, requests[0].EndDate
	for _, r := range requests[1:] {
		if r.StartDate.Before(start) {
			start = r.StartDate
		}
		if r.EndDate.After(end) {
			end = r.EndDate
		}
	}
	return start, end
}

var _ leave.ConflictEvaluator = (*ConflictService)(nil)
