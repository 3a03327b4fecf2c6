package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a row of the inventory table. Quantity is expected to be
// non-negative but the store does not enforce it.
type InventoryItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
}

// InventoryLog is one row of inventory_logs joined with its actor and item.
// ItemName is empty once the item has been deleted.
type InventoryLog struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	InventoryID *int64    `json:"inventory_id"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username"`
	ItemName    *string   `json:"item_name"`
}

// StockNotifications is the payload of the notifications page.
type StockNotifications struct {
	LowStock   []InventoryItem `json:"lowStock"`
	HighStock  []InventoryItem `json:"highStock"`
	Suppliers  []string        `json:"suppliers"`
	Categories []string        `json:"categories"`
}
