package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/middleware"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// SessionCookie writes and clears the client half of a session.
type SessionCookie interface {
	Issue(c echo.Context, token string) error
	Clear(c echo.Context)
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     SessionCookie
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies SessionCookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates a new user account with role "user".
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  resultResponse
// @Success      302   "form posts are redirected to /login"
// @Failure      400   {object}  resultResponse
// @Failure      500   {object}  resultResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Username, email and password are required")
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateUsername):
		return fail(c, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return fail(c, http.StatusBadRequest, "Username or email already exists")
	case errors.Is(err, domain.ErrPasswordTooLong):
		return fail(c, http.StatusBadRequest, "Password must be at most 72 bytes")
	case errors.Is(err, domain.ErrValidation):
		return fail(c, http.StatusBadRequest, "Username, email and password are required")
	default:
		h.log.Error().Err(err).Str("username", req.Username).Msg("registration failed")
		return fail(c, http.StatusInternalServerError, "Server error during registration")
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, resultResponse{Success: true, Message: "Registration successful"})
	}
	return c.Redirect(http.StatusFound, "/login")
}

// Login authenticates a user and opens a session. Bad credentials are a 200
// with success=false.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  resultResponse
// @Failure      500   {object}  resultResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, resultResponse{Success: false, Message: "Invalid credentials"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return c.JSON(http.StatusOK, resultResponse{Success: false, Message: "Invalid credentials"})
	}
	if err != nil {
		h.log.Error().Err(err).Str("username", req.Username).Msg("login failed")
		return fail(c, http.StatusInternalServerError, "Server error")
	}

	if err := h.cookies.Issue(c, token); err != nil {
		h.log.Error().Err(err).Msg("issue session cookie")
		return fail(c, http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, resultResponse{
		Success:  true,
		Redirect: user.HomePath(),
		Role:     user.Role,
	})
}

// Logout ends the caller's session. It succeeds without a session too.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  resultResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.SessionToken(c)); err != nil {
		h.log.Warn().Err(err).Msg("logout: destroy session")
	}
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, resultResponse{Success: true})
}

// UserInfo returns the session's user snapshot without credentials.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Success      302  "no session, redirected to /login"
// @Router       /api/user-info [get]
func (h *AuthHandler) UserInfo(c echo.Context) error {
	u, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
