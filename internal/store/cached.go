package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached decorates a Store with a Redis read-through cache of full
// collection row-sets. Every read of a collection otherwise costs a network
// round trip to the spreadsheet; caching the whole tab keeps the adapter's
// scan-based Get and Filter cheap. Writes invalidate the collection's entry
// so the next read fetches fresh truth. NextID always bypasses the cache.
type Cached struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a redis cache using the given TTL.
func NewCached(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(c Collection) string {
	return "rows:" + c.Sheet
}

// List serves the collection from cache when present.
func (s *Cached) List(ctx context.Context, c Collection) ([]Row, error) {
	key := cacheKey(c)
	payload, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var rows []Row
		if err := json.Unmarshal(payload, &rows); err == nil {
			return rows, nil
		}
		// Corrupt entry; drop it and fall through to the source.
		s.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("cache read failed", slog.String("collection", c.Sheet), slog.Any("error", err))
	}

	rows, err := s.inner.List(ctx, c)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rows); err == nil {
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("cache write failed", slog.String("collection", c.Sheet), slog.Any("error", err))
		}
	}
	return rows, nil
}

// Get scans the cached collection.
func (s *Cached) Get(ctx context.Context, c Collection, id string) (Row, error) {
	rows, err := s.List(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r[c.ID()] == id {
			return r, nil
		}
	}
	return nil, NotFoundError(c, id)
}

// Append writes through and invalidates the collection.
func (s *Cached) Append(ctx context.Context, c Collection, row Row) error {
	if err := s.inner.Append(ctx, c, row); err != nil {
		return err
	}
	s.invalidate(ctx, c)
	return nil
}

// UpdateByID writes through and invalidates the collection.
func (s *Cached) UpdateByID(ctx context.Context, c Collection, id string, fields Row) error {
	if err := s.inner.UpdateByID(ctx, c, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, c)
	return nil
}

// NextID delegates to the source; a stale cached row-set must never feed id
// generation.
func (s *Cached) NextID(ctx context.Context, c Collection, prefix string) (string, error) {
	return s.inner.NextID(ctx, c, prefix)
}

func (s *Cached) invalidate(ctx context.Context, c Collection) {
	if err := s.client.Del(ctx, cacheKey(c)).Err(); err != nil {
		s.logger.Warn("cache invalidate failed", slog.String("collection", c.Sheet), slog.Any("error", err))
	}
}
