package middleware

import (
	"net/http"

	"github.com/fashionhub/auth-service/internal/domain"
)

// RequireRole enforces that the authenticated identity carries one of the
// given roles. A missing role is an authentication problem (401), a known
// role outside the allowed set is a permission problem (403).
func RequireRole(writeErr WriteErrFunc, roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrNoRole())
				return
			}

			if _, ok := allowed[domain.Role(role)]; !ok {
				writeErr(w, r, domain.ErrForbidden())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
