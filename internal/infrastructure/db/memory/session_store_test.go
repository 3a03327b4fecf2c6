package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestSessionStoreRoundTrip(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewSessionStore().WithClock(c.now)
	ctx := context.Background()

	sess := domain.Session{Token: "a", User: domain.User{ID: 1, Username: "alice"}}
	require.NoError(t, store.Save(ctx, sess, time.Minute))

	got, err := store.Find(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.User.Username)

	require.NoError(t, store.Delete(ctx, "a"))
	got, err = store.Find(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreExpiresOnRead(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewSessionStore().WithClock(c.now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{Token: "a"}, time.Minute))
	c.t = c.t.Add(time.Minute)

	got, err := store.Find(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStoreSweep(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := NewSessionStore().WithClock(c.now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{Token: "short"}, time.Minute))
	require.NoError(t, store.Save(ctx, domain.Session{Token: "long"}, time.Hour))
	c.t = c.t.Add(2 * time.Minute)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}
