// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// RollupLookup is the outcome of RollupCache.Get.
type RollupLookup struct {
	Rollup *entity.Rollup
	Hit    bool

	// Generation is the tenant cache generation the lookup was keyed on.
	// A rollup computed after the lookup must be stored with it, so that an
	// invalidation in between leaves the entry unreachable.
	Generation int64
}

// RollupCache caches computed rollups per tenant, range and data type filter.
type RollupCache interface {
	// Get returns the cached rollup, if any, and the generation it read.
	Get(ctx context.Context, filter RecordFilter) (RollupLookup, error)

	// Set stores a rollup for the filter under the generation returned by Get.
	Set(ctx context.Context, filter RecordFilter, generation int64, rollup *entity.Rollup) error

	// InvalidateTenant drops every cached rollup of the tenant.
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}
