// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// RecordFilter narrows the canonical records loaded for a rollup.
type RecordFilter struct {
	TenantID  uuid.UUID
	DateRange valueobject.DateRange
	DataTypes []entity.DataType // Empty means every data type
}

// CanonicalRecordRepository defines the interface for canonical record persistence operations.
type CanonicalRecordRepository interface {
	// BulkCreate stores all records in a single transaction. Either every record is stored or none is.
	BulkCreate(ctx context.Context, records []*entity.CanonicalRecord) error

	// FindForRollup retrieves the tenant's records matching the filter.
	FindForRollup(ctx context.Context, filter RecordFilter) ([]*entity.CanonicalRecord, error)

	// CountByImport returns how many records an import produced.
	CountByImport(ctx context.Context, tenantID, importID uuid.UUID) (int64, error)
}
