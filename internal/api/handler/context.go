package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/capsule/retail-inventory/internal/api/middleware"
	"github.com/capsule/retail-inventory/internal/core/domain"
)

// ctxUser returns the user resolved by the Session middleware. Routes that
// call it sit behind Auth, so a nil user means the middleware chain is
// miswired; that surfaces as a 401 instead of a nil dereference.
func ctxUser(c echo.Context) (*domain.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return u, nil
}

// wantsJSON reports whether the caller posted JSON rather than a form.
func wantsJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

type resultResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Role     string `json:"role,omitempty"`
	ID       int64  `json:"id,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, resultResponse{Success: false, Message: msg})
}
