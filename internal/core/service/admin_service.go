package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

const (
	dashboardActivityLimit = 10
	adminListLimit         = 50
)

// AdminService backs the admin reporting panel.
type AdminService struct {
	stats    ports.StatsRepository
	users    ports.UserRepository
	activity ports.ActivityRepository
	lowStock int
	now      func() time.Time
	log      zerolog.Logger
}

func NewAdminService(
	stats ports.StatsRepository,
	users ports.UserRepository,
	activity ports.ActivityRepository,
	lowStock int,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		stats:    stats,
		users:    users,
		activity: activity,
		lowStock: lowStock,
		now:      time.Now,
		log:      log,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// DashboardStats runs every aggregate in turn. The first failing query aborts
// the whole result; partial stats are never returned.
func (s *AdminService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	now := s.now()
	weekAgo := now.Add(-7 * 24 * time.Hour)
	dayAgo := now.Add(-24 * time.Hour)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		out domain.DashboardStats
		err error
	)

	if out.Users.Total, err = s.stats.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("user count: %w", err)
	}
	if out.Users.Recent, err = s.stats.CountUsersCreatedSince(ctx, weekAgo); err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	if out.Users.Active, err = s.stats.CountUsersActiveSince(ctx, dayAgo); err != nil {
		return nil, fmt.Errorf("active users: %w", err)
	}
	s.log.Debug().Interface("users", out.Users).Msg("user stats")

	if out.Inventory.Total, err = s.stats.CountInventory(ctx); err != nil {
		return nil, fmt.Errorf("inventory count: %w", err)
	}
	if out.Inventory.LowStock, err = s.stats.CountInventoryBelow(ctx, s.lowStock); err != nil {
		return nil, fmt.Errorf("low stock count: %w", err)
	}
	if out.Inventory.TotalValue, err = s.stats.InventoryValue(ctx); err != nil {
		return nil, fmt.Errorf("inventory value: %w", err)
	}
	s.log.Debug().Interface("inventory", out.Inventory).Msg("inventory stats")

	if out.Activity, err = s.activity.Recent(ctx, dashboardActivityLimit); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	if out.Logins.Today, err = s.stats.CountActivitySince(ctx, domain.ActivityLogin, startOfDay); err != nil {
		return nil, fmt.Errorf("today logins: %w", err)
	}
	if out.Logins.Week, err = s.stats.CountActivitySince(ctx, domain.ActivityLogin, weekAgo); err != nil {
		return nil, fmt.Errorf("weekly logins: %w", err)
	}
	s.log.Debug().Interface("logins", out.Logins).Msg("login stats")

	return &out, nil
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) UserActivity(ctx context.Context) ([]domain.ActivityRecord, error) {
	return s.activity.Recent(ctx, adminListLimit)
}

func (s *AdminService) InventoryLogs(ctx context.Context) ([]domain.InventoryLog, error) {
	return s.activity.RecentInventoryLogs(ctx, adminListLimit)
}
