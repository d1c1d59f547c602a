package middleware

import (
	"net/http"
	"slices"
)

// Permission names an action an admin role may perform
type Permission string

// Known admin permissions
const (
	PermCreateCourse   Permission = "create_course"
	PermReadCourse     Permission = "read_course"
	PermUpdateCourse   Permission = "update_course"
	PermDeleteCourse   Permission = "delete_course"
	PermManageComments Permission = "manage_comments"
)

// rolePermissions maps admin roles to the actions they are allowed to perform
var rolePermissions = map[string][]Permission{
	"course_creator":  {PermCreateCourse, PermReadCourse},
	"course_manager":  {PermReadCourse, PermUpdateCourse, PermDeleteCourse},
	"comment_manager": {PermManageComments},
}

// RequirePermission checks that the authenticated admin's role grants at least
// one of the given permissions. Must run after AuthMiddleware.
func RequirePermission(permissions ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetAdminClaims(r.Context())
			if !ok {
				respondAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			granted := rolePermissions[claims.Role]
			allowed := false
			for _, p := range permissions {
				if slices.Contains(granted, p) {
					allowed = true
					break
				}
			}

			if !allowed {
				respondAuthError(w, http.StatusForbidden, "Access denied: insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ValidRole reports whether role is one of the known admin roles
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}
