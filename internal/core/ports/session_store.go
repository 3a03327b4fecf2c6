package ports

import (
	"context"
	"time"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

// SessionStore keeps server-side sessions keyed by token. Find returns
// (nil, nil) for unknown tokens. ttl is the remaining lifetime of the session.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session, ttl time.Duration) error
	Find(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// SessionManager is the contract the HTTP layer relies on.
type SessionManager interface {
	Create(ctx context.Context, user domain.User) (string, error)
	Get(ctx context.Context, token string) (*domain.User, error)
	Destroy(ctx context.Context, token string) error
}
