package taxonomy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing a tenant's taxonomy.
type ListCategoriesInput struct {
	TenantID uuid.UUID
}

// ListCategoriesOutput represents the taxonomy in match-priority order.
type ListCategoriesOutput struct {
	Categories []*entity.TaxonomyCategory
}

// ListCategoriesUseCase handles listing taxonomy categories.
type ListCategoriesUseCase struct {
	taxonomyRepo adapter.TaxonomyRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(taxonomyRepo adapter.TaxonomyRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		taxonomyRepo: taxonomyRepo,
	}
}

// Execute returns the tenant's taxonomy.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.taxonomyRepo.FindByTenant(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxonomy categories: %w", err)
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}
