// Package importing contains use cases that turn raw rows into canonical records.
package importing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/transform"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// ImportRecordsInput represents the input for importing raw rows.
type ImportRecordsInput struct {
	TenantID uuid.UUID
	ActorID  uuid.UUID
	Source   entity.Source
	DataType entity.DataType // Optional, defaults to the pipeline default
	Rows     []entity.RawRecord
	Config   *valueobject.TransformConfig // Optional override of the tenant's saved mapping
}

// preparer loads everything a pipeline run needs for a tenant.
type preparer struct {
	taxonomyRepo    adapter.TaxonomyRepository
	mappingRepo     adapter.MappingConfigRepository
	defaultDataType entity.DataType
}

func (p *preparer) prepare(ctx context.Context, input ImportRecordsInput, importID uuid.UUID) (transform.Input, error) {
	if input.TenantID == uuid.Nil {
		return transform.Input{}, domainerror.NewImportError(
			domainerror.ErrCodeMissingImportFields,
			"tenant is required",
			nil,
		)
	}

	if !input.Source.IsValid() {
		return transform.Input{}, domainerror.NewImportError(
			domainerror.ErrCodeInvalidSource,
			fmt.Sprintf("source %q is not a known integration", input.Source),
			domainerror.ErrInvalidSource,
		)
	}

	dataType := p.defaultDataType
	if input.DataType != "" {
		parsed, ok := entity.ParseDataType(string(input.DataType))
		if !ok {
			return transform.Input{}, domainerror.NewImportError(
				domainerror.ErrCodeInvalidDataType,
				"data type must be 'actual', 'budget' or 'forecast'",
				domainerror.ErrInvalidDataType,
			)
		}
		dataType = parsed
	}

	if len(input.Rows) == 0 {
		return transform.Input{}, domainerror.NewImportError(
			domainerror.ErrCodeEmptyImport,
			"at least one row is required",
			domainerror.ErrEmptyImport,
		)
	}

	cfg, err := p.resolveConfig(ctx, input)
	if err != nil {
		return transform.Input{}, err
	}

	taxonomy, err := p.taxonomyRepo.FindByTenant(ctx, input.TenantID)
	if err != nil {
		return transform.Input{}, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	return transform.Input{
		Rows: input.Rows,
		Metadata: entity.ImportMetadata{
			ImportID:  importID,
			TenantID:  input.TenantID,
			CreatedBy: input.ActorID,
			Source:    input.Source,
			DataType:  dataType,
		},
		Config:   cfg,
		Taxonomy: taxonomy,
		Now:      time.Now().UTC(),
	}, nil
}

// resolveConfig returns the request override, else the tenant's saved mapping, else the default.
func (p *preparer) resolveConfig(ctx context.Context, input ImportRecordsInput) (valueobject.TransformConfig, error) {
	var cfg valueobject.TransformConfig

	switch {
	case input.Config != nil:
		cfg = *input.Config
	default:
		saved, err := p.mappingRepo.FindByTenant(ctx, input.TenantID)
		switch {
		case errors.Is(err, domainerror.ErrMappingConfigNotFound):
			cfg = valueobject.DefaultTransformConfig()
		case err != nil:
			return cfg, fmt.Errorf("failed to load mapping config: %w", err)
		default:
			cfg = *saved
		}
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, domainerror.NewImportError(
			domainerror.ErrCodeInvalidTransformConfig,
			err.Error(),
			domainerror.ErrInvalidTransformConfig,
		)
	}
	return cfg, nil
}
