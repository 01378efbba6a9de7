// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
)

// mappingConfigRepository implements the adapter.MappingConfigRepository interface.
type mappingConfigRepository struct {
	db *gorm.DB
}

// NewMappingConfigRepository creates a new mapping config repository instance.
func NewMappingConfigRepository(db *gorm.DB) adapter.MappingConfigRepository {
	return &mappingConfigRepository{
		db: db,
	}
}

// FindByTenant retrieves the tenant's saved configuration.
func (r *mappingConfigRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*valueobject.TransformConfig, error) {
	var m model.MappingConfigModel
	result := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMappingConfigNotFound
		}
		return nil, result.Error
	}
	return m.ToValueObject(), nil
}

// Upsert creates or replaces the tenant's configuration.
func (r *mappingConfigRepository) Upsert(ctx context.Context, tenantID uuid.UUID, cfg valueobject.TransformConfig) error {
	m := model.MappingConfigFromValueObject(tenantID, cfg)
	m.UpdatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"section", "section_column", "section_mapping_type", "hierarchy_mappings", "updated_at",
		}),
	}).Create(m).Error
}
