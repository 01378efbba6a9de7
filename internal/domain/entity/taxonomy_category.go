// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaxonomyCategory is a tenant-scoped category used for keyword-based categorization.
// Keyword order is significant only for readability; taxonomy order defines match priority.
type TaxonomyCategory struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Keywords  []string
	Section   string // Optional Revenue/Expenses hint for level 1
	Position  int    // Lower positions are matched first
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTaxonomyCategory creates a new TaxonomyCategory entity.
func NewTaxonomyCategory(tenantID uuid.UUID, name string, keywords []string, section string, position int) *TaxonomyCategory {
	now := time.Now().UTC()

	return &TaxonomyCategory{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Keywords:  keywords,
		Section:   section,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
