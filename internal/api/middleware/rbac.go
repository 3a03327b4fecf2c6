package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
)

// AdminDenied is the plain-text body of a rejected admin request.
const AdminDenied = "Access denied. Admin privileges required."

// RBAC enforces role-based access control. A missing session and a role
// outside allowedRoles both get a 403 with a plain-text body.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				metrics.AccessDeniedTotal.WithLabelValues("admin").Inc()
				return c.String(http.StatusForbidden, AdminDenied)
			}
			if _, ok := allowed[u.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("admin").Inc()
				return c.String(http.StatusForbidden, AdminDenied)
			}
			return next(c)
		}
	}
}

// Admin is RBAC restricted to the admin role.
func Admin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
