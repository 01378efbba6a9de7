package dto

import (
	"time"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// CreateTaxonomyCategoryRequest represents the request body for category creation.
type CreateTaxonomyCategoryRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=100"`
	Keywords []string `json:"keywords" binding:"required,min=1"`
	Section  string   `json:"section,omitempty" binding:"omitempty,oneof=Revenue Expenses"`
}

// UpdateTaxonomyCategoryRequest represents the request body for a partial category update.
type UpdateTaxonomyCategoryRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Keywords []string `json:"keywords,omitempty"`
	Section  *string  `json:"section,omitempty"`
	Position *int     `json:"position,omitempty" binding:"omitempty,gte=0"`
}

// TaxonomyCategoryResponse represents a single category in API responses.
type TaxonomyCategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	Section   string    `json:"section,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxonomyListResponse represents the response for listing the taxonomy.
type TaxonomyListResponse struct {
	Categories []TaxonomyCategoryResponse `json:"categories"`
}

// SeedTaxonomyResponse represents the result of seeding the default taxonomy.
type SeedTaxonomyResponse struct {
	CreatedCount int `json:"created_count"`
}

// ToTaxonomyCategoryResponse converts a TaxonomyCategory entity to its DTO.
func ToTaxonomyCategoryResponse(cat *entity.TaxonomyCategory) TaxonomyCategoryResponse {
	keywords := cat.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return TaxonomyCategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Keywords:  keywords,
		Section:   cat.Section,
		Position:  cat.Position,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToTaxonomyListResponse converts the tenant taxonomy to its DTO, keeping priority order.
func ToTaxonomyListResponse(categories []*entity.TaxonomyCategory) TaxonomyListResponse {
	out := make([]TaxonomyCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, ToTaxonomyCategoryResponse(cat))
	}
	return TaxonomyListResponse{Categories: out}
}
