package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleTeamLead Role = "team_lead"
	RoleHR       Role = "hr"
)

// User entity. The leave core consumes users read-only; the one exception
// is the leave balance decrement applied when a paid leave is approved.
type User struct {
	ID           string
	FullName     string
	Role         Role
	Active       bool
	LeaveBalance int
	TeamID       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTeamLead reports whether the user holds the lead role on their team.
func (u User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}
