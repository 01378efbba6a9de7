// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
)

// taxonomyRepository implements the adapter.TaxonomyRepository interface.
type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new taxonomy repository instance.
func NewTaxonomyRepository(db *gorm.DB) adapter.TaxonomyRepository {
	return &taxonomyRepository{
		db: db,
	}
}

// Create creates a new taxonomy category in the database.
func (r *taxonomyRepository) Create(ctx context.Context, category *entity.TaxonomyCategory) error {
	return r.db.WithContext(ctx).Create(model.TaxonomyCategoryFromEntity(category)).Error
}

// CreateBatch creates several categories in one transaction.
func (r *taxonomyRepository) CreateBatch(ctx context.Context, categories []*entity.TaxonomyCategory) error {
	if len(categories) == 0 {
		return nil
	}

	models := make([]*model.TaxonomyCategoryModel, len(categories))
	for i, c := range categories {
		models[i] = model.TaxonomyCategoryFromEntity(c)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, 100).Error
	})
}

// FindByID retrieves a taxonomy category by its ID.
func (r *taxonomyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TaxonomyCategory, error) {
	var m model.TaxonomyCategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTaxonomyCategoryNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}

// FindByTenant retrieves a tenant's taxonomy ordered by position, then creation time.
func (r *taxonomyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.TaxonomyCategory, error) {
	var models []model.TaxonomyCategoryModel
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.TaxonomyCategory, len(models))
	for i := range models {
		categories[i] = models[i].ToEntity()
	}
	return categories, nil
}

// ExistsByNameAndTenant checks case-insensitively for a category name within a tenant.
func (r *taxonomyRepository) ExistsByNameAndTenant(ctx context.Context, name string, tenantID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TaxonomyCategoryModel{}).
		Where("tenant_id = ? AND LOWER(name) = ?", tenantID, strings.ToLower(name)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// NextPosition returns one past the tenant's highest position.
func (r *taxonomyRepository) NextPosition(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var maxPosition sql.NullInt64
	row := r.db.WithContext(ctx).
		Model(&model.TaxonomyCategoryModel{}).
		Where("tenant_id = ?", tenantID).
		Select("MAX(position)").
		Row()
	if err := row.Scan(&maxPosition); err != nil {
		return 0, err
	}
	if !maxPosition.Valid {
		return 0, nil
	}
	return int(maxPosition.Int64) + 1, nil
}

// Update updates an existing taxonomy category in the database.
func (r *taxonomyRepository) Update(ctx context.Context, category *entity.TaxonomyCategory) error {
	return r.db.WithContext(ctx).Save(model.TaxonomyCategoryFromEntity(category)).Error
}

// Delete removes a taxonomy category from the database.
func (r *taxonomyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TaxonomyCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTaxonomyCategoryNotFound
	}
	return nil
}
