// Package cache implements the rollup cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

const keyPrefix = "pnl:rollup"

// rollupCache implements adapter.RollupCache.
//
// Keys embed a per-tenant generation counter. Invalidation bumps the counter,
// so every key written before it becomes unreachable and expires by TTL.
type rollupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRollupCache creates a Redis-backed rollup cache.
func NewRollupCache(client *redis.Client, ttl time.Duration) adapter.RollupCache {
	return &rollupCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached rollup for the filter.
func (c *rollupCache) Get(ctx context.Context, filter adapter.RecordFilter) (adapter.RollupLookup, error) {
	generation, err := c.generation(ctx, filter.TenantID)
	if err != nil {
		return adapter.RollupLookup{}, err
	}
	lookup := adapter.RollupLookup{Generation: generation}

	data, err := c.client.Get(ctx, key(filter, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return lookup, nil
	}
	if err != nil {
		return lookup, fmt.Errorf("failed to read rollup cache: %w", err)
	}

	var rollup entity.Rollup
	if err := json.Unmarshal(data, &rollup); err != nil {
		return lookup, fmt.Errorf("failed to decode cached rollup: %w", err)
	}
	if rollup.Revenue == nil || rollup.Expenses == nil {
		return lookup, nil
	}

	lookup.Rollup = &rollup
	lookup.Hit = true
	return lookup, nil
}

// Set stores the rollup under the given generation. A rollup keyed on a
// generation that has since been bumped is never read again.
func (c *rollupCache) Set(ctx context.Context, filter adapter.RecordFilter, generation int64, rollup *entity.Rollup) error {
	data, err := json.Marshal(rollup)
	if err != nil {
		return fmt.Errorf("failed to encode rollup: %w", err)
	}

	return c.client.Set(ctx, key(filter, generation), data, c.ttl).Err()
}

// InvalidateTenant bumps the tenant's generation.
func (c *rollupCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	return c.client.Incr(ctx, generationKey(tenantID)).Err()
}

func (c *rollupCache) generation(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(tenantID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return generation, nil
}

func key(filter adapter.RecordFilter, generation int64) string {
	types := make([]string, len(filter.DataTypes))
	for i, dt := range filter.DataTypes {
		types[i] = string(dt)
	}
	sort.Strings(types)

	return fmt.Sprintf("%s:%s:%d:%s:%s:%s",
		keyPrefix,
		filter.TenantID,
		generation,
		formatBound(filter.DateRange.Start),
		formatBound(filter.DateRange.End),
		strings.Join(types, ","),
	)
}

func generationKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:generation", keyPrefix, tenantID)
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// nopRollupCache always misses. It stands in when Redis is unreachable at startup.
type nopRollupCache struct{}

// NewNopRollupCache creates a cache that never stores anything.
func NewNopRollupCache() adapter.RollupCache {
	return nopRollupCache{}
}

func (nopRollupCache) Get(context.Context, adapter.RecordFilter) (adapter.RollupLookup, error) {
	return adapter.RollupLookup{}, nil
}

func (nopRollupCache) Set(context.Context, adapter.RecordFilter, int64, *entity.Rollup) error {
	return nil
}

func (nopRollupCache) InvalidateTenant(context.Context, uuid.UUID) error {
	return nil
}
