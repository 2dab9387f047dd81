package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
	"github.com/solacehr/leave-backend-go/internal/handler/http/response"
)

// RequireHR requires the hr role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || role != user.RoleHR {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireApprover requires the hr or team_lead role. Approving,
// refusing and reviewing the pending queue are gated on it.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || (role != user.RoleHR && role != user.RoleTeamLead) {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func roleFromClaims(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}

	return user.Role(roleStr), true
}
