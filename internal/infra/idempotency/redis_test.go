package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, time.Hour)
}

func TestReserve_FirstRequestWins(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	id, reserved, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Empty(t, id)

	val, err := mr.Get(keyPrefix + "t1:abc")
	require.NoError(t, err)
	assert.Equal(t, "pending", val)
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"t1:abc"))
}

func TestReserve_ConcurrentDuplicateConflicts(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	_, _, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)

	_, reserved, err := store.Reserve(ctx, "t1:abc")
	assert.False(t, reserved)
	assert.True(t, httperr.IsBusiness(err, "request_in_progress"))
}

func TestReserve_ReturnsCompletedPurchase(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	_, _, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)
	require.NoError(t, store.Complete(ctx, "t1:abc", "purchase-9"))

	id, reserved, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, "purchase-9", id)
}

func TestRelease_AllowsRetry(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	_, _, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "t1:abc"))
	assert.False(t, mr.Exists(keyPrefix+"t1:abc"))

	_, reserved, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestReserve_KeyExpires(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	_, _, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, reserved, err := store.Reserve(ctx, "t1:abc")
	require.NoError(t, err)
	assert.True(t, reserved)
}
