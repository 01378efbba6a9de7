// Package valueobject contains domain value objects for the P&L engine.
package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// SectionMappingType selects how level 1 of the category path is assigned.
type SectionMappingType string

const (
	// SectionMappingStatic uses the configured section, refined by the taxonomy section hint.
	SectionMappingStatic SectionMappingType = "static"
	// SectionMappingColumn classifies a raw column value into Revenue or Expenses.
	SectionMappingColumn SectionMappingType = "column"
)

// MaxHierarchyLevel is the deepest category path level a mapping may target.
// It must match the lte bound on HierarchyMapping.Level.
const MaxHierarchyLevel = 32

// HierarchyMapping maps a raw column to a depth of the category path.
type HierarchyMapping struct {
	SourceColumn string `json:"source_column" yaml:"source_column" validate:"required"`
	Level        int    `json:"level" yaml:"level" validate:"gte=2,lte=32"`
}

// TransformConfig is the per-tenant configuration of a transformation run.
// It is passed explicitly to every pipeline call.
type TransformConfig struct {
	Section            string             `json:"section" yaml:"section" validate:"required,oneof=Revenue Expenses"`
	SectionColumn      string             `json:"section_column" yaml:"section_column" validate:"required_if=SectionMappingType column"`
	SectionMappingType SectionMappingType `json:"section_mapping_type" yaml:"section_mapping_type" validate:"required,oneof=static column"`
	HierarchyMappings  []HierarchyMapping `json:"hierarchy_mappings" yaml:"hierarchy_mappings" validate:"dive"`
}

// DefaultTransformConfig returns the configuration used when a tenant has none saved.
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{
		Section:            entity.SectionExpenses,
		SectionMappingType: SectionMappingStatic,
	}
}

// WithDefaults fills an unset section and mapping type from DefaultTransformConfig.
func (c TransformConfig) WithDefaults() TransformConfig {
	defaults := DefaultTransformConfig()
	if c.Section == "" {
		c.Section = defaults.Section
	}
	if c.SectionMappingType == "" {
		c.SectionMappingType = defaults.SectionMappingType
	}
	return c
}

// UsesSectionColumn reports whether level 1 comes from the section column classifier.
func (c TransformConfig) UsesSectionColumn() bool {
	return c.SectionMappingType == SectionMappingColumn && c.SectionColumn != ""
}

var validate = validator.New()

// Validate checks the configuration shape.
func (c TransformConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid transform config: %s", strings.Join(problems, "; "))
}
