package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

func setupStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func sampleSession() domain.Session {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return domain.Session{
		Token:     "tok-1",
		User:      domain.User{ID: 7, Username: "alice", Email: "a@x.io", Role: domain.RoleAdmin},
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
}

func TestSessionStore_SaveAndFind(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	sess := sampleSession()

	require.NoError(t, store.Save(ctx, sess, 30*time.Minute))
	assert.True(t, mr.Exists("session:tok-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:tok-1"))

	got, err := store.Find(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.User.Username)
	assert.True(t, got.User.IsAdmin())
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))
}

func TestSessionStore_FindMissing(t *testing.T) {
	store, _ := setupStore(t)

	got, err := store.Find(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession(), time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := store.Find(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Delete(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession(), time.Minute))
	require.NoError(t, store.Delete(ctx, "tok-1"))
	assert.False(t, mr.Exists("session:tok-1"))

	// deleting an absent key is not an error
	require.NoError(t, store.Delete(ctx, "tok-1"))
}

func TestSessionStore_CorruptPayload(t *testing.T) {
	store, mr := setupStore(t)
	require.NoError(t, mr.Set("session:bad", "{not json"))

	_, err := store.Find(context.Background(), "bad")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, Ping(client)(context.Background()))

	mr.Close()
	assert.Error(t, Ping(client)(context.Background()))
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
