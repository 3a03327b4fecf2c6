package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// StockThresholds bound the low-stock and high-stock queries. An item is low
// when quantity < Low and high when quantity > High.
type StockThresholds struct {
	Low  int
	High int
}

// DefaultStockThresholds mirrors the out-of-the-box configuration.
var DefaultStockThresholds = StockThresholds{Low: 5, High: 15}

type InventoryService struct {
	repo       ports.InventoryRepository
	activity   ports.ActivityRecorder
	thresholds StockThresholds
	log        zerolog.Logger
}

func NewInventoryService(
	repo ports.InventoryRepository,
	activity ports.ActivityRecorder,
	thresholds StockThresholds,
	log zerolog.Logger,
) *InventoryService {
	return &InventoryService{
		repo:       repo,
		activity:   activity,
		thresholds: thresholds,
		log:        log,
	}
}

// Add inserts item and records INVENTORY_ADD for actor.
func (s *InventoryService) Add(ctx context.Context, actor domain.User, item domain.InventoryItem) (int64, error) {
	if strings.TrimSpace(item.Name) == "" {
		return 0, domain.ErrValidation
	}

	id, err := s.repo.Create(ctx, &item)
	if err != nil {
		return 0, fmt.Errorf("add inventory item: %w", err)
	}

	s.activity.Record(ctx, domain.ActivityRecord{
		UserID:      actor.ID,
		Type:        domain.ActivityInventoryAdd,
		Description: fmt.Sprintf("Added item: %s (Qty: %d)", item.Name, item.Quantity),
		InventoryID: &id,
	})
	metrics.InventoryChangesTotal.WithLabelValues("add").Inc()
	s.log.Info().Int64("item_id", id).Int64("user_id", actor.ID).Msg("inventory item added")
	return id, nil
}

// Delete removes the item with id. The row is read first so its name can go
// into the activity description. Zero affected rows yields ErrItemNotFound and
// no activity record.
func (s *InventoryService) Delete(ctx context.Context, actor domain.User, id int64) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
		return fmt.Errorf("delete inventory item: %w", err)
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}

	if item != nil {
		s.activity.Record(ctx, domain.ActivityRecord{
			UserID:      actor.ID,
			Type:        domain.ActivityInventoryDelete,
			Description: fmt.Sprintf("Deleted item: %s", item.Name),
			InventoryID: &id,
		})
	}
	metrics.InventoryChangesTotal.WithLabelValues("delete").Inc()
	s.log.Info().Int64("item_id", id).Int64("user_id", actor.ID).Msg("inventory item deleted")
	return nil
}

func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// Notifications gathers the stock alerts shown on the notifications page.
func (s *InventoryService) Notifications(ctx context.Context) (*domain.StockNotifications, error) {
	low, err := s.repo.ListBelow(ctx, s.thresholds.Low)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	high, err := s.repo.ListAbove(ctx, s.thresholds.High)
	if err != nil {
		return nil, fmt.Errorf("high stock: %w", err)
	}
	suppliers, err := s.repo.DistinctSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("suppliers: %w", err)
	}
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return &domain.StockNotifications{
		LowStock:   low,
		HighStock:  high,
		Suppliers:  suppliers,
		Categories: categories,
	}, nil
}
