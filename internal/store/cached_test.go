package store

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// countingStore wraps Memory and counts List calls reaching the source.
type countingStore struct {
	*Memory
	mu    sync.Mutex
	lists int
}

func (c *countingStore) List(ctx context.Context, col Collection) ([]Row, error) {
	c.mu.Lock()
	c.lists++
	c.mu.Unlock()
	return c.Memory.List(ctx, col)
}

func newCachedFixture(t *testing.T) (*Cached, *countingStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingStore{Memory: NewMemory()}
	cached := NewCached(inner, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return cached, inner
}

func TestCachedListHitsSourceOnce(t *testing.T) {
	ctx := context.Background()
	cached, inner := newCachedFixture(t)

	require.NoError(t, inner.Append(ctx, Dealers, Row{"dealer_id": "DLR-00001", "name": "A"}))

	for i := 0; i < 3; i++ {
		rows, err := cached.List(ctx, Dealers)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}
	require.Equal(t, 1, inner.lists)
}

func TestCachedWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	cached, inner := newCachedFixture(t)

	require.NoError(t, cached.Append(ctx, Dealers, Row{"dealer_id": "DLR-00001", "name": "A"}))

	rows, err := cached.List(ctx, Dealers)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, cached.UpdateByID(ctx, Dealers, "DLR-00001", Row{"name": "B"}))

	got, err := cached.Get(ctx, Dealers, "DLR-00001")
	require.NoError(t, err)
	require.Equal(t, "B", got["name"])
	require.Equal(t, 2, inner.lists, "update must evict the cached row-set")
}

func TestCachedNextIDBypassesCache(t *testing.T) {
	ctx := context.Background()
	cached, inner := newCachedFixture(t)

	// Warm the cache, then append directly to the source so the cache is
	// stale; NextID must still see the new row.
	_, err := cached.List(ctx, Payments)
	require.NoError(t, err)
	require.NoError(t, inner.Memory.Append(ctx, Payments, Row{"payment_id": "PAY-00009"}))

	id, err := cached.NextID(ctx, Payments, "PAY")
	require.NoError(t, err)
	require.Equal(t, "PAY-00010", id)
}
