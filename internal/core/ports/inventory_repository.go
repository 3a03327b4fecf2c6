package ports

import (
	"context"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// InventoryRepository defines the persistence operations on the inventory
// table. FindByID returns domain.ErrItemNotFound for unknown ids; Delete
// reports the number of removed rows.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
	ListBelow(ctx context.Context, quantity int) ([]domain.InventoryItem, error)
	ListAbove(ctx context.Context, quantity int) ([]domain.InventoryItem, error)
	Names(ctx context.Context) ([]string, error)
	DistinctSuppliers(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}
