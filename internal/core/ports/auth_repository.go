package ports

import (
	"context"
	"time"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// UserRepository defines the persistence operations on the users table.
// FindByUsername returns domain.ErrUserNotFound when no row matches and Create
// returns domain.ErrDuplicateEntry when a uniqueness constraint rejects the row.
type UserRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context) ([]domain.User, error)
}
