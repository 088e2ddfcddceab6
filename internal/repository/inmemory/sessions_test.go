package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreRevoke(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "abc", now.Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "other")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestSessionStoreExpires(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "abc", now.Add(time.Minute)))
	require.NoError(t, store.Revoke(ctx, "stale", now.Add(-time.Minute)))
	require.Equal(t, 1, store.Len())

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	require.False(t, revoked)
	require.Equal(t, 0, store.Len())
}
