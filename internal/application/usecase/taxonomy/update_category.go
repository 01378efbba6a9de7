package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
)

// UpdateCategoryInput represents a partial update. Nil fields are left unchanged.
type UpdateCategoryInput struct {
	TenantID   uuid.UUID
	CategoryID uuid.UUID
	Name       *string
	Keywords   []string // Replaces all keywords when non-nil
	Section    *string
	Position   *int
}

// UpdateCategoryOutput represents the output of a taxonomy update.
type UpdateCategoryOutput struct {
	Category *entity.TaxonomyCategory
}

// UpdateCategoryUseCase handles taxonomy category updates.
type UpdateCategoryUseCase struct {
	taxonomyRepo adapter.TaxonomyRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(taxonomyRepo adapter.TaxonomyRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		taxonomyRepo: taxonomyRepo,
	}
}

// Execute performs the update. Existing canonical records keep the category
// they were assigned at import time.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := findOwned(ctx, uc.taxonomyRepo, input.TenantID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	name := category.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	section := category.Section
	if input.Section != nil {
		section = *input.Section
	}
	if err := validateNameAndSection(name, section); err != nil {
		return nil, err
	}

	if !strings.EqualFold(name, category.Name) {
		exists, err := uc.taxonomyRepo.ExistsByNameAndTenant(ctx, name, input.TenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to check taxonomy name existence: %w", err)
		}
		if exists {
			return nil, domainerror.NewTaxonomyError(
				domainerror.ErrCodeTaxonomyNameExists,
				"a taxonomy category with this name already exists",
				domainerror.ErrTaxonomyNameExists,
			)
		}
	}

	category.Name = name
	category.Section = section
	if input.Keywords != nil {
		category.Keywords = cleanKeywords(input.Keywords)
	}
	if input.Position != nil {
		category.Position = *input.Position
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.taxonomyRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update taxonomy category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}

// findOwned loads a category and checks it belongs to the tenant.
func findOwned(ctx context.Context, repo adapter.TaxonomyRepository, tenantID, categoryID uuid.UUID) (*entity.TaxonomyCategory, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTaxonomyCategoryNotFound) {
			return nil, domainerror.NewTaxonomyError(
				domainerror.ErrCodeTaxonomyNotFound,
				"taxonomy category not found",
				domainerror.ErrTaxonomyCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find taxonomy category: %w", err)
	}

	if category.TenantID != tenantID {
		return nil, domainerror.NewTaxonomyError(
			domainerror.ErrCodeNotAuthorizedTaxonomy,
			"not authorized to modify this taxonomy category",
			domainerror.ErrNotAuthorizedToModifyTaxonomy,
		)
	}

	return category, nil
}
