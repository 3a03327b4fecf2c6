package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
	log       zerolog.Logger
}

func NewInventoryHandler(inventory ports.InventoryService, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, log: log}
}

type addItemRequest struct {
	Name     string          `json:"name" form:"name" validate:"required,max=255"`
	Quantity int             `json:"quantity" form:"quantity"`
	Price    decimal.Decimal `json:"price" form:"price" swaggertype:"number"`
	Category string          `json:"category" form:"category" validate:"max=255"`
	Supplier string          `json:"supplier" form:"supplier" validate:"max=255"`
}

// Add inserts an inventory item.
//
// @Summary      Add inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Item"
// @Success      200   {object}  resultResponse
// @Failure      400   {object}  resultResponse
// @Failure      500   {object}  resultResponse
// @Router       /inventory [post]
func (h *InventoryHandler) Add(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	id, err := h.inventory.Add(c.Request().Context(), *user, domain.InventoryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Category: req.Category,
		Supplier: req.Supplier,
	})
	if errors.Is(err, domain.ErrValidation) {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	if err != nil {
		h.log.Error().Err(err).Msg("add inventory item")
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, resultResponse{Success: true, ID: id})
}

// List returns every inventory item.
//
// @Summary      List inventory
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   domain.InventoryItem
// @Failure      500  {object}  errorResponse
// @Router       /inventory-data [get]
func (h *InventoryHandler) List(c echo.Context) error {
	items, err := h.inventory.List(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list inventory")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Delete removes the item with the given id.
//
// @Summary      Delete inventory item
// @Tags         inventory
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  resultResponse
// @Failure      404  {object}  resultResponse
// @Failure      500  {object}  resultResponse
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusNotFound, "Item not found")
	}

	err = h.inventory.Delete(c.Request().Context(), *user, id)
	if errors.Is(err, domain.ErrItemNotFound) {
		return fail(c, http.StatusNotFound, "Item not found")
	}
	if err != nil {
		h.log.Error().Err(err).Int64("item_id", id).Msg("delete inventory item")
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, resultResponse{Success: true})
}

// Notifications returns the low/high stock lists and the distinct suppliers
// and categories.
//
// @Summary      Stock notifications
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  domain.StockNotifications
// @Failure      500  {object}  errorResponse
// @Router       /notifications-data [get]
func (h *InventoryHandler) Notifications(c echo.Context) error {
	n, err := h.inventory.Notifications(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("notifications")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusOK, n)
}
