package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

// DefaultSessionTTL applies when no positive lifetime is configured.
const DefaultSessionTTL = 30 * time.Minute

// SessionManager issues, resolves and destroys server-side sessions. Each
// session lives for a fixed ttl from creation, measured on the injected clock.
type SessionManager struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// TTL returns the lifetime given to new sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create stores a snapshot of user under a fresh random token.
func (m *SessionManager) Create(ctx context.Context, user domain.User) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}

	user.PasswordHash = ""
	now := m.now()
	sess := domain.Session{
		Token:     id.String(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("created").Inc()
	m.log.Debug().Int64("user_id", user.ID).Msg("session created")
	return sess.Token, nil
}

// Get resolves token to the user snapshot. Unknown or expired tokens yield
// (nil, nil); expired sessions are removed on sight.
func (m *SessionManager) Get(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := m.store.Find(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	if sess.Expired(m.now()) {
		if err := m.store.Delete(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("failed to delete expired session")
		}
		metrics.SessionsTotal.WithLabelValues("expired").Inc()
		return nil, nil
	}

	user := sess.User
	return &user, nil
}

// Destroy removes the session; the token never resolves again.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	metrics.SessionsTotal.WithLabelValues("destroyed").Inc()
	return nil
}
