package ports

import (
	"context"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

type InventoryService interface {
	Add(ctx context.Context, actor domain.User, item domain.InventoryItem) (int64, error)
	Delete(ctx context.Context, actor domain.User, id int64) error
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Notifications(ctx context.Context) (*domain.StockNotifications, error)
}

type ChatbotService interface {
	Reply(ctx context.Context, message string) (string, error)
}
