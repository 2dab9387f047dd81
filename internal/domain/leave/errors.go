package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrOverlappingRequest   = errors.New("An existing request already covers this period")
	ErrInsufficientBalance  = errors.New("Insufficient leave balance")
	ErrAlreadyDecided       = errors.New("Leave request already decided")
	ErrNotCancellable       = errors.New("Only pending requests can be cancelled")
	ErrNotRequestOwner      = errors.New("Only the request owner can cancel it")
)
