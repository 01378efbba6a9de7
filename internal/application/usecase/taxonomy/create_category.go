// Package taxonomy contains tenant taxonomy use cases.
package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for taxonomy category names.
const MaxCategoryNameLength = 100

// CreateCategoryInput represents the input for taxonomy category creation.
type CreateCategoryInput struct {
	TenantID uuid.UUID
	Name     string
	Keywords []string
	Section  string // Optional Revenue/Expenses hint
}

// CreateCategoryOutput represents the output of taxonomy category creation.
type CreateCategoryOutput struct {
	Category *entity.TaxonomyCategory
}

// CreateCategoryUseCase handles taxonomy category creation logic.
type CreateCategoryUseCase struct {
	taxonomyRepo adapter.TaxonomyRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(taxonomyRepo adapter.TaxonomyRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		taxonomyRepo: taxonomyRepo,
	}
}

// Execute performs the taxonomy category creation. New categories are appended
// to the end of the tenant's match order.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateNameAndSection(name, input.Section); err != nil {
		return nil, err
	}

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

	position, err := uc.taxonomyRepo.NextPosition(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute taxonomy position: %w", err)
	}

	category := entity.NewTaxonomyCategory(input.TenantID, name, cleanKeywords(input.Keywords), input.Section, position)

	if err := uc.taxonomyRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create taxonomy category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

func validateNameAndSection(name, section string) error {
	if name == "" {
		return domainerror.NewTaxonomyError(
			domainerror.ErrCodeMissingTaxonomyFields,
			"name is required",
			nil,
		)
	}

	if len(name) > MaxCategoryNameLength {
		return domainerror.NewTaxonomyError(
			domainerror.ErrCodeTaxonomyNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrTaxonomyNameTooLong,
		)
	}

	if section != "" && section != entity.SectionRevenue && section != entity.SectionExpenses {
		return domainerror.NewTaxonomyError(
			domainerror.ErrCodeInvalidSection,
			"section must be 'Revenue' or 'Expenses'",
			domainerror.ErrInvalidSection,
		)
	}

	return nil
}

// cleanKeywords trims keywords and drops blanks and duplicates, keeping order.
func cleanKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, kw)
	}
	return cleaned
}
