package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/capsule/retail-inventory/internal/api/metrics"
)

const loginPath = "/login"

// Auth lets the request through when Session resolved a user and otherwise
// redirects to the login page. No error body is written.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				metrics.AccessDeniedTotal.WithLabelValues("auth").Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}
