package middleware

import (
	"net/http"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/pkg/response"
)

// RequireRole checks that the logged-in user holds one of the allowed
// roles. Role comes from context, set by AuthMiddleware from the claims.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePatient guards the patient portal routes.
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}

// RequireReceptionist guards the front desk routes.
func RequireReceptionist(next http.Handler) http.Handler {
	return RequireRole(entity.RoleReceptionist)(next)
}

// RequireTriageStaff guards the triage queue; interns run it, doctors
// may step in.
func RequireTriageStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIntern, entity.RoleDoctor)(next)
}

// RequireDoctor guards the consultation routes.
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}

// RequireAdmin guards the admin console.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
