package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/ports"
)

type SupportHandler struct {
	support ports.SupportService
	log     zerolog.Logger
}

func NewSupportHandler(support ports.SupportService, log zerolog.Logger) *SupportHandler {
	return &SupportHandler{support: support, log: log}
}

type supportRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Issue    string `json:"issue" form:"issue"`
	Message  string `json:"message" form:"message"`
}

// ContactSupport mails the request to the support address. Responses are
// plain text.
//
// @Summary      Contact support
// @Tags         support
// @Accept       json,x-www-form-urlencoded
// @Produce      plain
// @Param        body  body      supportRequest  true  "Support request"
// @Success      200   {string}  string  "OK"
// @Failure      500   {string}  string  "Failed to send email"
// @Router       /contact-support [post]
func (h *SupportHandler) ContactSupport(c echo.Context) error {
	var req supportRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusInternalServerError, "Failed to send email")
	}

	err := h.support.Submit(c.Request().Context(), ports.SupportRequest{
		Username: req.Username,
		Email:    req.Email,
		Issue:    req.Issue,
		Message:  req.Message,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("email send error")
		return c.String(http.StatusInternalServerError, "Failed to send email")
	}
	return c.String(http.StatusOK, http.StatusText(http.StatusOK))
}
