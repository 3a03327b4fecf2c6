package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

const (
	userKey  = "user"
	tokenKey = "session_token"
)

// TokenReader extracts the session token from a request.
type TokenReader interface {
	Read(c echo.Context) (string, error)
}

// Session resolves the request's session cookie and stores the user snapshot
// in the context. It never rejects a request; guards decide what an anonymous
// caller may do. A failing session store is logged and treated as anonymous.
func Session(tokens TokenReader, sessions ports.SessionManager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := tokens.Read(c)
			if err != nil {
				return next(c)
			}

			c.Set(tokenKey, token)
			user, err := sessions.Get(c.Request().Context(), token)
			if err != nil {
				log.Error().Err(err).Str("path", c.Path()).Msg("session lookup failed")
				return next(c)
			}
			if user != nil {
				c.Set(userKey, user)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userKey).(*domain.User)
	return u
}

// SessionToken returns the token presented by the request, even when it no
// longer resolves to a user.
func SessionToken(c echo.Context) string {
	t, _ := c.Get(tokenKey).(string)
	return t
}

// WithUser and WithToken populate the context the way Session does. Tests
// use them to skip the cookie round trip.
func WithUser(c echo.Context, u *domain.User) {
	c.Set(userKey, u)
}

func WithToken(c echo.Context, token string) {
	c.Set(tokenKey, token)
}
