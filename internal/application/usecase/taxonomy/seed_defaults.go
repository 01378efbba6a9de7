package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// SeedDefaultsInput represents the input for seeding a tenant's taxonomy.
type SeedDefaultsInput struct {
	TenantID uuid.UUID
}

// SeedDefaultsOutput reports how many categories were created.
type SeedDefaultsOutput struct {
	CreatedCount int
}

// SeedDefaultsUseCase gives a tenant without a taxonomy the default one.
type SeedDefaultsUseCase struct {
	taxonomyRepo adapter.TaxonomyRepository
	seeds        adapter.TaxonomySeedSource
}

// NewSeedDefaultsUseCase creates a new SeedDefaultsUseCase instance.
func NewSeedDefaultsUseCase(taxonomyRepo adapter.TaxonomyRepository, seeds adapter.TaxonomySeedSource) *SeedDefaultsUseCase {
	return &SeedDefaultsUseCase{
		taxonomyRepo: taxonomyRepo,
		seeds:        seeds,
	}
}

// Execute seeds the taxonomy. It is a no-op when the tenant already has categories.
func (uc *SeedDefaultsUseCase) Execute(ctx context.Context, input SeedDefaultsInput) (*SeedDefaultsOutput, error) {
	existing, err := uc.taxonomyRepo.FindByTenant(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	if len(existing) > 0 {
		return &SeedDefaultsOutput{}, nil
	}

	seeds, err := uc.seeds.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy seed: %w", err)
	}

	categories := make([]*entity.TaxonomyCategory, 0, len(seeds))
	for i, seed := range seeds {
		if err := validateNameAndSection(seed.Name, seed.Section); err != nil {
			slog.Warn("Skipping invalid taxonomy seed",
				"name", seed.Name,
				"error", err,
			)
			continue
		}
		categories = append(categories, entity.NewTaxonomyCategory(
			input.TenantID, seed.Name, cleanKeywords(seed.Keywords), seed.Section, i,
		))
	}

	if len(categories) == 0 {
		return &SeedDefaultsOutput{}, nil
	}

	if err := uc.taxonomyRepo.CreateBatch(ctx, categories); err != nil {
		return nil, fmt.Errorf("failed to seed taxonomy: %w", err)
	}

	slog.Info("Seeded default taxonomy",
		"tenantID", input.TenantID,
		"createdCount", len(categories),
	)

	return &SeedDefaultsOutput{CreatedCount: len(categories)}, nil
}
