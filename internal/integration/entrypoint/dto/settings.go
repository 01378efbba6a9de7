package dto

import (
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// HierarchyMappingDTO maps a raw column to a category path level.
type HierarchyMappingDTO struct {
	SourceColumn string `json:"source_column"`
	Level        int    `json:"level"`
}

// MappingConfigRequest represents a tenant transform configuration in requests.
// Shape checks happen in the domain so every caller gets the same rules.
type MappingConfigRequest struct {
	Section            string                `json:"section"`
	SectionColumn      string                `json:"section_column"`
	SectionMappingType string                `json:"section_mapping_type"`
	HierarchyMappings  []HierarchyMappingDTO `json:"hierarchy_mappings"`
}

// MappingConfigResponse represents the tenant transform configuration.
type MappingConfigResponse struct {
	Section            string                `json:"section"`
	SectionColumn      string                `json:"section_column,omitempty"`
	SectionMappingType string                `json:"section_mapping_type"`
	HierarchyMappings  []HierarchyMappingDTO `json:"hierarchy_mappings"`
	IsDefault          bool                  `json:"is_default"`
}

// ToTransformConfig converts the request into the domain value object.
func (r MappingConfigRequest) ToTransformConfig() valueobject.TransformConfig {
	mappings := make([]valueobject.HierarchyMapping, 0, len(r.HierarchyMappings))
	for _, m := range r.HierarchyMappings {
		mappings = append(mappings, valueobject.HierarchyMapping{
			SourceColumn: m.SourceColumn,
			Level:        m.Level,
		})
	}
	return valueobject.TransformConfig{
		Section:            r.Section,
		SectionColumn:      r.SectionColumn,
		SectionMappingType: valueobject.SectionMappingType(r.SectionMappingType),
		HierarchyMappings:  mappings,
	}
}

// ToMappingConfigResponse converts a TransformConfig to its response DTO.
func ToMappingConfigResponse(cfg valueobject.TransformConfig, isDefault bool) MappingConfigResponse {
	mappings := make([]HierarchyMappingDTO, 0, len(cfg.HierarchyMappings))
	for _, m := range cfg.HierarchyMappings {
		mappings = append(mappings, HierarchyMappingDTO{SourceColumn: m.SourceColumn, Level: m.Level})
	}
	return MappingConfigResponse{
		Section:            cfg.Section,
		SectionColumn:      cfg.SectionColumn,
		SectionMappingType: string(cfg.SectionMappingType),
		HierarchyMappings:  mappings,
		IsDefault:          isDefault,
	}
}
