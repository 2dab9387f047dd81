package response

import (
	"errors"
	"net/http"

	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/domain/team"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
	"github.com/solacehr/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlappingRequest):
		BadRequest(w, "An existing request already covers this period", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Only pending requests can be cancelled")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Only the request owner can cancel it")

	// Collaborator lookups
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")

	// Role gates
	case errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrApproverRoleRequired):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
