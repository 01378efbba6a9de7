// Package settings contains tenant configuration use cases.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// GetMappingConfigInput represents the input for reading a tenant's mapping.
type GetMappingConfigInput struct {
	TenantID uuid.UUID
}

// GetMappingConfigOutput represents a tenant's mapping.
type GetMappingConfigOutput struct {
	Config    valueobject.TransformConfig
	IsDefault bool // True when the tenant has never saved a mapping
}

// GetMappingConfigUseCase returns the tenant's transform configuration.
type GetMappingConfigUseCase struct {
	mappingRepo adapter.MappingConfigRepository
}

// NewGetMappingConfigUseCase creates a new GetMappingConfigUseCase instance.
func NewGetMappingConfigUseCase(mappingRepo adapter.MappingConfigRepository) *GetMappingConfigUseCase {
	return &GetMappingConfigUseCase{
		mappingRepo: mappingRepo,
	}
}

// Execute returns the saved mapping or the default one.
func (uc *GetMappingConfigUseCase) Execute(ctx context.Context, input GetMappingConfigInput) (*GetMappingConfigOutput, error) {
	cfg, err := uc.mappingRepo.FindByTenant(ctx, input.TenantID)
	if errors.Is(err, domainerror.ErrMappingConfigNotFound) {
		return &GetMappingConfigOutput{
			Config:    valueobject.DefaultTransformConfig(),
			IsDefault: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping config: %w", err)
	}

	return &GetMappingConfigOutput{
		Config: cfg.WithDefaults(),
	}, nil
}
