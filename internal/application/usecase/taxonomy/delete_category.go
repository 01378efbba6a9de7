package taxonomy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
)

// DeleteCategoryInput represents the input for taxonomy category deletion.
type DeleteCategoryInput struct {
	TenantID   uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles taxonomy category deletion.
type DeleteCategoryUseCase struct {
	taxonomyRepo adapter.TaxonomyRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(taxonomyRepo adapter.TaxonomyRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		taxonomyRepo: taxonomyRepo,
	}
}

// Execute removes the category. Records already categorized keep their category id.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	if _, err := findOwned(ctx, uc.taxonomyRepo, input.TenantID, input.CategoryID); err != nil {
		return err
	}

	if err := uc.taxonomyRepo.Delete(ctx, input.CategoryID); err != nil {
		return fmt.Errorf("failed to delete taxonomy category: %w", err)
	}
	return nil
}
