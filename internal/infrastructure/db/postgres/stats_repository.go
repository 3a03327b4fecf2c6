package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// StatsRepository answers the admin dashboard aggregates. Admin accounts are
// excluded from every user count.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM users WHERE role <> $1", domain.RoleAdmin)
}

func (r *StatsRepository) CountUsersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM users WHERE created_at >= $1 AND role <> $2", since, domain.RoleAdmin)
}

func (r *StatsRepository) CountUsersActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM users WHERE last_login >= $1 AND role <> $2", since, domain.RoleAdmin)
}

func (r *StatsRepository) CountInventory(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM inventory")
}

func (r *StatsRepository) CountInventoryBelow(ctx context.Context, quantity int) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM inventory WHERE quantity < $1", quantity)
}

func (r *StatsRepository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(quantity * price), 0) FROM inventory").Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return v, nil
}

func (r *StatsRepository) CountActivitySince(ctx context.Context, activity domain.ActivityType, since time.Time) (int64, error) {
	return r.count(ctx,
		"SELECT COUNT(*) FROM user_activity WHERE activity_type = $1 AND created_at >= $2",
		string(activity), since)
}

func (r *StatsRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
