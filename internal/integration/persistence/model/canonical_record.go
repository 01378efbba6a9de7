// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// CanonicalRecordModel represents the canonical_records table in the database.
// Rows are append-only.
type CanonicalRecordModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_canonical_records_tenant_date,priority:1"`
	ImportID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Date         time.Time       `gorm:"type:timestamp;not null;index:idx_canonical_records_tenant_date,priority:2"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Source       string          `gorm:"type:varchar(32);not null"`
	DataType     string          `gorm:"type:varchar(16);not null;index"`
	CategoryID   string          `gorm:"type:varchar(64);not null"`
	CategoryPath pq.StringArray  `gorm:"type:text[]"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CanonicalRecordModel.
func (CanonicalRecordModel) TableName() string {
	return "canonical_records"
}

// ToEntity converts a CanonicalRecordModel to a domain CanonicalRecord entity.
func (m *CanonicalRecordModel) ToEntity() *entity.CanonicalRecord {
	path := make([]string, len(m.CategoryPath))
	copy(path, m.CategoryPath)

	return &entity.CanonicalRecord{
		ID:           m.ID,
		TenantID:     m.TenantID,
		ImportID:     m.ImportID,
		Name:         m.Name,
		Date:         m.Date.UTC(),
		Amount:       m.Amount,
		Source:       entity.Source(m.Source),
		DataType:     entity.DataType(m.DataType),
		CategoryID:   m.CategoryID,
		CategoryPath: path,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// CanonicalRecordFromEntity creates a CanonicalRecordModel from a domain CanonicalRecord entity.
func CanonicalRecordFromEntity(r *entity.CanonicalRecord) *CanonicalRecordModel {
	return &CanonicalRecordModel{
		ID:           r.ID,
		TenantID:     r.TenantID,
		ImportID:     r.ImportID,
		Name:         r.Name,
		Date:         r.Date.UTC(),
		Amount:       r.Amount,
		Source:       string(r.Source),
		DataType:     string(r.DataType),
		CategoryID:   r.CategoryID,
		CategoryPath: pq.StringArray(r.CategoryPath),
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
	}
}
