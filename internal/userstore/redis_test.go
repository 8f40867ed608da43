package userstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client)
}

func TestRedisStoreCreateAndFind(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, User{
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice Liddell",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created, found)
}

func TestRedisStoreFindMissing(t *testing.T) {
	store := newTestRedisStore(t)

	_, err := store.FindByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUsernameConflict(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = store.Create(ctx, User{Username: "alice", Email: "other@example.com"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestRedisStoreEmailConflict(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, User{Username: "alice", Email: "shared@example.com"})
	require.NoError(t, err)

	_, err = store.Create(ctx, User{Username: "bob", Email: "shared@example.com"})
	require.ErrorIs(t, err, ErrConflict)

	// the failed create must not shadow a later distinct registration
	_, err = store.Create(ctx, User{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
}
