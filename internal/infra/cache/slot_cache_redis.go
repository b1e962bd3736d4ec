package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

const keyPrefix = "slots"

// RedisSlotCache keeps per-resource, per-date evaluations for a short TTL.
// Invalidation bumps a per-resource generation counter so every cached date
// of that resource is orphaned at once and left to expire.
type RedisSlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSlotCache(rdb *redis.Client, ttl time.Duration) *RedisSlotCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSlotCache{rdb: rdb, ttl: ttl}
}

func generationKey(resourceID string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, resourceID)
}

func entryKey(resourceID string, gen int64, date wallclock.Date) string {
	return fmt.Sprintf("%s:%s:%d:%s", keyPrefix, resourceID, gen, date)
}

func (c *RedisSlotCache) generation(ctx context.Context, resourceID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(resourceID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached evaluation, or nil on a miss, together with the
// generation it looked under.
func (c *RedisSlotCache) Get(
	ctx context.Context,
	resourceID string,
	date wallclock.Date,
) (*availability.Evaluation, int64, error) {

	gen, err := c.generation(ctx, resourceID)
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.rdb.Get(ctx, entryKey(resourceID, gen, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, err
	}

	var ev availability.Evaluation
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, gen, err
	}
	return &ev, gen, nil
}

// Set stores ev under gen, the generation seen before the store was read.
// If the resource was invalidated since, the entry is never looked up.
func (c *RedisSlotCache) Set(
	ctx context.Context,
	resourceID string,
	gen int64,
	date wallclock.Date,
	ev availability.Evaluation,
) error {

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(resourceID, gen, date), payload, c.ttl).Err()
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, resourceID string) error {
	return c.rdb.Incr(ctx, generationKey(resourceID)).Err()
}

// Ping is checked once at startup; an unreachable cache only logs.
func (c *RedisSlotCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
