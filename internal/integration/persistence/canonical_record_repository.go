// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
)

const defaultBatchSize = 500

// canonicalRecordRepository implements the adapter.CanonicalRecordRepository interface.
type canonicalRecordRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewCanonicalRecordRepository creates a new canonical record repository instance.
func NewCanonicalRecordRepository(db *gorm.DB, batchSize int) adapter.CanonicalRecordRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &canonicalRecordRepository{
		db:        db,
		batchSize: batchSize,
	}
}

// BulkCreate inserts all records inside one transaction. Records whose id
// already exists are left untouched, so re-syncing a source is idempotent.
func (r *canonicalRecordRepository) BulkCreate(ctx context.Context, records []*entity.CanonicalRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]*model.CanonicalRecordModel, len(records))
	for i, rec := range records {
		models[i] = model.CanonicalRecordFromEntity(rec)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).CreateInBatches(models, r.batchSize).Error
		if err != nil {
			return fmt.Errorf("failed to insert canonical records: %w", err)
		}
		return nil
	})
}

// FindForRollup retrieves the tenant's records inside the filter's range and data types.
func (r *canonicalRecordRepository) FindForRollup(ctx context.Context, filter adapter.RecordFilter) ([]*entity.CanonicalRecord, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", filter.TenantID)

	if !filter.DateRange.Start.IsZero() {
		query = query.Where("date >= ?", filter.DateRange.Start.UTC())
	}
	if !filter.DateRange.End.IsZero() {
		query = query.Where("date <= ?", filter.DateRange.End.UTC())
	}
	if len(filter.DataTypes) > 0 {
		types := make([]string, len(filter.DataTypes))
		for i, dt := range filter.DataTypes {
			types[i] = string(dt)
		}
		query = query.Where("data_type IN ?", types)
	}

	var models []model.CanonicalRecordModel
	if err := query.Order("date ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.CanonicalRecord, len(models))
	for i := range models {
		records[i] = models[i].ToEntity()
	}
	return records, nil
}

// CountByImport returns how many records an import produced.
func (r *canonicalRecordRepository) CountByImport(ctx context.Context, tenantID, importID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CanonicalRecordModel{}).
		Where("tenant_id = ? AND import_id = ?", tenantID, importID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
