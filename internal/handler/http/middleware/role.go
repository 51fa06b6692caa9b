package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/shift-attendance-go/internal/handler/http/response"
)

// RequirePermission checks that the authenticated operator's role grants permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := user.ActorFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			if !actor.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
