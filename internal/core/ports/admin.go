package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// StatsRepository exposes the read-only aggregates behind the admin dashboard.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountUsersActiveSince(ctx context.Context, since time.Time) (int64, error)
	CountInventory(ctx context.Context) (int64, error)
	CountInventoryBelow(ctx context.Context, quantity int) (int64, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	CountActivitySince(ctx context.Context, activity domain.ActivityType, since time.Time) (int64, error)
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	Users(ctx context.Context) ([]domain.User, error)
	UserActivity(ctx context.Context) ([]domain.ActivityRecord, error)
	InventoryLogs(ctx context.Context) ([]domain.InventoryLog, error)
}
