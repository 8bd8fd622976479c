package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
)

// RequireApprover requires manager or admin role. The service layer still
// re-checks the role against the directory, so a stale token cannot widen
// access.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverRequired)
			return
		}

		if !user.Role(roleStr).CanDecide() {
			response.HandleError(w, user.ErrApproverRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
