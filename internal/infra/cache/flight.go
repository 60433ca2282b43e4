package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const flightKeyPrefix = "flight:"

func FlightKey(id uuid.UUID) string {
	return flightKeyPrefix + id.String()
}

// FlightCache stores flight views in Redis. Entries are short-lived and
// deleted after every committed inventory change, so readers see seat
// counts at most one TTL old only when an invalidation was lost.
type FlightCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewFlightCache(rdb redis.Cmdable, ttl time.Duration) *FlightCache {
	return &FlightCache{rdb: rdb, ttl: ttl}
}

func (c *FlightCache) Get(ctx context.Context, id uuid.UUID) (*queries.FlightView, bool, error) {
	raw, err := c.rdb.Get(ctx, FlightKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "redis get flight")
	}

	var view queries.FlightView
	if err := json.Unmarshal(raw, &view); err != nil {
		// Undecodable entries are treated as misses and overwritten.
		return nil, false, nil
	}
	return &view, true, nil
}

func (c *FlightCache) Set(ctx context.Context, view *queries.FlightView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return errs.Wrap(err, "encode flight view")
	}
	if err := c.rdb.Set(ctx, FlightKey(view.ID), raw, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set flight")
	}
	return nil
}

// Invalidate never fails the caller; the TTL bounds staleness if Redis is
// unreachable.
func (c *FlightCache) Invalidate(ctx context.Context, resourceID uuid.UUID) {
	if err := c.rdb.Del(ctx, FlightKey(resourceID)).Err(); err != nil {
		slog.WarnContext(ctx, "flight cache invalidation failed", "resource_id", resourceID, "error", err)
	}
}

// NoopFlightCache is used when Redis is not configured.
type NoopFlightCache struct{}

func (NoopFlightCache) Get(context.Context, uuid.UUID) (*queries.FlightView, bool, error) {
	return nil, false, nil
}

func (NoopFlightCache) Set(context.Context, *queries.FlightView) error { return nil }

func (NoopFlightCache) Invalidate(context.Context, uuid.UUID) {}
