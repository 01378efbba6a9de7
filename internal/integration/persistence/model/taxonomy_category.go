// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// TaxonomyCategoryModel represents the taxonomy_categories table in the database.
type TaxonomyCategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Keywords  pq.StringArray `gorm:"type:text[]"`
	Section   string         `gorm:"type:varchar(16)"`
	Position  int            `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for the TaxonomyCategoryModel.
func (TaxonomyCategoryModel) TableName() string {
	return "taxonomy_categories"
}

// ToEntity converts a TaxonomyCategoryModel to a domain TaxonomyCategory entity.
func (m *TaxonomyCategoryModel) ToEntity() *entity.TaxonomyCategory {
	keywords := make([]string, len(m.Keywords))
	copy(keywords, m.Keywords)

	return &entity.TaxonomyCategory{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		Keywords:  keywords,
		Section:   m.Section,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TaxonomyCategoryFromEntity creates a TaxonomyCategoryModel from a domain TaxonomyCategory entity.
func TaxonomyCategoryFromEntity(c *entity.TaxonomyCategory) *TaxonomyCategoryModel {
	return &TaxonomyCategoryModel{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Name:      c.Name,
		Keywords:  pq.StringArray(c.Keywords),
		Section:   c.Section,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
