package user

import "errors"

var (
	ErrUserNotFound         = errors.New("User not found")
	ErrHRAccessRequired     = errors.New("HR access required")
	ErrApproverRoleRequired = errors.New("HR or team lead access required")
)
