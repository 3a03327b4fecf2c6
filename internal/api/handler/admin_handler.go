package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/ports"
)

type AdminHandler struct {
	admin ports.AdminService
	log   zerolog.Logger
}

func NewAdminHandler(admin ports.AdminService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, log: log}
}

// DashboardStats aggregates user, inventory, activity and login figures. Any
// failing query fails the whole response and its message is echoed back.
//
// @Summary      Admin dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      403  {string}  string
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/dashboard-stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.admin.DashboardStats(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard stats")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error", Details: err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// Users lists all accounts, newest first.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {string}  string
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, users)
}

// UserActivity returns the most recent activity records.
//
// @Summary      Recent user activity
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.ActivityRecord
// @Failure      403  {string}  string
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/user-activity [get]
func (h *AdminHandler) UserActivity(c echo.Context) error {
	recs, err := h.admin.UserActivity(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("user activity")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, recs)
}

// InventoryLogs returns the most recent inventory changes.
//
// @Summary      Recent inventory changes
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.InventoryLog
// @Failure      403  {string}  string
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/inventory-logs [get]
func (h *AdminHandler) InventoryLogs(c echo.Context) error {
	logs, err := h.admin.InventoryLogs(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("inventory logs")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, logs)
}
