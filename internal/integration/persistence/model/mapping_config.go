// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// HierarchyMappingList stores hierarchy mappings as a JSON column.
type HierarchyMappingList []valueobject.HierarchyMapping

// Value implements driver.Valuer.
func (l HierarchyMappingList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *HierarchyMappingList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into HierarchyMappingList", src)
	}
	return json.Unmarshal(raw, l)
}

// MappingConfigModel represents the mapping_configs table in the database.
// Each tenant has at most one row.
type MappingConfigModel struct {
	TenantID           uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Section            string               `gorm:"type:varchar(16);not null"`
	SectionColumn      string               `gorm:"type:varchar(255)"`
	SectionMappingType string               `gorm:"type:varchar(16);not null"`
	HierarchyMappings  HierarchyMappingList `gorm:"type:jsonb"`
	CreatedAt          time.Time            `gorm:"not null"`
	UpdatedAt          time.Time            `gorm:"not null"`
}

// TableName returns the table name for the MappingConfigModel.
func (MappingConfigModel) TableName() string {
	return "mapping_configs"
}

// ToValueObject converts the row to a TransformConfig.
func (m *MappingConfigModel) ToValueObject() *valueobject.TransformConfig {
	return &valueobject.TransformConfig{
		Section:            m.Section,
		SectionColumn:      m.SectionColumn,
		SectionMappingType: valueobject.SectionMappingType(m.SectionMappingType),
		HierarchyMappings:  []valueobject.HierarchyMapping(m.HierarchyMappings),
	}
}

// MappingConfigFromValueObject creates a MappingConfigModel for the tenant.
func MappingConfigFromValueObject(tenantID uuid.UUID, cfg valueobject.TransformConfig) *MappingConfigModel {
	now := time.Now().UTC()
	return &MappingConfigModel{
		TenantID:           tenantID,
		Section:            cfg.Section,
		SectionColumn:      cfg.SectionColumn,
		SectionMappingType: string(cfg.SectionMappingType),
		HierarchyMappings:  HierarchyMappingList(cfg.HierarchyMappings),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// AllModels lists every model for auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&CanonicalRecordModel{},
		&TaxonomyCategoryModel{},
		&MappingConfigModel{},
	}
}
