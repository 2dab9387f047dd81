package team

import "errors"

var (
	ErrTeamNotFound = errors.New("Team not found")
	ErrNoTeamLead   = errors.New("Team has no lead")
)
