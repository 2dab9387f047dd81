package team

import (
	"context"

	"github.com/solacehr/leave-backend-go/internal/domain/user"
)

// TeamRepository - team directory lookup for the conflict evaluators.
// The batch variants answer for a whole team set in one query each.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (Team, error)
	CountActiveMembers(ctx context.Context, teamID string) (int, error)
	// CountActiveMembersByTeams returns active member counts keyed by
	// team id. Teams with no active members are absent from the map.
	CountActiveMembersByTeams(ctx context.Context, teamIDs []string) (map[string]int, error)
	// GetLead returns ErrNoTeamLead when the team has no member with
	// the team_lead role.
	GetLead(ctx context.Context, teamID string) (user.User, error)
	GetLeadsByTeams(ctx context.Context, teamIDs []string) (map[string]user.User, error)
}
