package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// UpdateMappingConfigInput represents the input for replacing a tenant's mapping.
type UpdateMappingConfigInput struct {
	TenantID uuid.UUID
	Config   valueobject.TransformConfig
}

// UpdateMappingConfigOutput represents the stored mapping.
type UpdateMappingConfigOutput struct {
	Config valueobject.TransformConfig
}

// UpdateMappingConfigUseCase validates and stores a tenant's transform configuration.
// Only future imports use the new mapping.
type UpdateMappingConfigUseCase struct {
	mappingRepo adapter.MappingConfigRepository
}

// NewUpdateMappingConfigUseCase creates a new UpdateMappingConfigUseCase instance.
func NewUpdateMappingConfigUseCase(mappingRepo adapter.MappingConfigRepository) *UpdateMappingConfigUseCase {
	return &UpdateMappingConfigUseCase{
		mappingRepo: mappingRepo,
	}
}

// Execute performs the update.
func (uc *UpdateMappingConfigUseCase) Execute(ctx context.Context, input UpdateMappingConfigInput) (*UpdateMappingConfigOutput, error) {
	cfg := input.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidMappingConfig,
			err.Error(),
			domainerror.ErrInvalidMappingConfig,
		)
	}

	if err := uc.mappingRepo.Upsert(ctx, input.TenantID, cfg); err != nil {
		return nil, fmt.Errorf("failed to save mapping config: %w", err)
	}

	return &UpdateMappingConfigOutput{
		Config: cfg,
	}, nil
}
