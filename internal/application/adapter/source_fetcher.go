// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// SourceFetcher pulls raw rows for a tenant from one external integration.
type SourceFetcher interface {
	// Source returns the tag stamped on every record this fetcher produces.
	Source() entity.Source

	// Fetch returns the tenant's raw rows.
	Fetch(ctx context.Context, tenantID uuid.UUID) ([]entity.RawRecord, error)
}
