package team

import "time"

// Team entity, consumed read-only. Membership and the lead are derived
// from the users table: a member belongs via team_id, the lead is the
// member holding the team_lead role (at most one per team).
type Team struct {
	ID   string
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}
