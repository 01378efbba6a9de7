// Package sourcesync pulls rows from the configured external integrations.
package sourcesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/rollup"
	"github.com/finance-tracker/pnl/internal/domain/transform"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// SyncSourcesInput represents the input for a sync run.
type SyncSourcesInput struct {
	TenantID uuid.UUID
	ActorID  uuid.UUID
	DataType entity.DataType // Optional, defaults to the pipeline default
}

// SourceSummary reports what one integration contributed.
type SourceSummary struct {
	Source        entity.Source
	FetchedCount  int
	ImportedCount int
	Skipped       []transform.SkippedRow
}

// SyncSourcesOutput represents the output of a sync run.
type SyncSourcesOutput struct {
	ImportID      uuid.UUID
	ImportedCount int
	Sources       []SourceSummary
	SyncedAt      time.Time
}

// SyncSourcesUseCase fetches every integration concurrently, transforms each
// batch with its own source tag and stores the merged result as one import.
type SyncSourcesUseCase struct {
	fetchers        []adapter.SourceFetcher
	recordRepo      adapter.CanonicalRecordRepository
	taxonomyRepo    adapter.TaxonomyRepository
	mappingRepo     adapter.MappingConfigRepository
	cache           adapter.RollupCache
	metrics         adapter.ImportMetrics
	defaultDataType entity.DataType
}

// NewSyncSourcesUseCase creates a new SyncSourcesUseCase instance.
func NewSyncSourcesUseCase(
	fetchers []adapter.SourceFetcher,
	recordRepo adapter.CanonicalRecordRepository,
	taxonomyRepo adapter.TaxonomyRepository,
	mappingRepo adapter.MappingConfigRepository,
	cache adapter.RollupCache,
	metrics adapter.ImportMetrics,
	defaultDataType entity.DataType,
) *SyncSourcesUseCase {
	return &SyncSourcesUseCase{
		fetchers:        fetchers,
		recordRepo:      recordRepo,
		taxonomyRepo:    taxonomyRepo,
		mappingRepo:     mappingRepo,
		cache:           cache,
		metrics:         metrics,
		defaultDataType: defaultDataType,
	}
}

// Execute runs the sync. Any fetch failure aborts the run before anything is stored.
func (uc *SyncSourcesUseCase) Execute(ctx context.Context, input SyncSourcesInput) (*SyncSourcesOutput, error) {
	if len(uc.fetchers) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeNoSourcesConfigured,
			"no external sources are configured",
			domainerror.ErrNoSourcesConfigured,
		)
	}

	dataType := uc.defaultDataType
	if input.DataType != "" {
		parsed, ok := entity.ParseDataType(string(input.DataType))
		if !ok {
			return nil, domainerror.NewImportError(
				domainerror.ErrCodeInvalidDataType,
				"data type must be 'actual', 'budget' or 'forecast'",
				domainerror.ErrInvalidDataType,
			)
		}
		dataType = parsed
	}

	cfg, err := uc.loadConfig(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	taxonomy, err := uc.taxonomyRepo.FindByTenant(ctx, input.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	rows, err := uc.fetchAll(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	importID := uuid.New()
	now := time.Now().UTC()

	perSource := make([]entity.SourceRecords, len(uc.fetchers))
	summaries := make([]SourceSummary, len(uc.fetchers))
	for i, f := range uc.fetchers {
		result := transform.Transform(transform.Input{
			Rows: rows[i],
			Metadata: entity.ImportMetadata{
				ImportID:  importID,
				TenantID:  input.TenantID,
				CreatedBy: input.ActorID,
				Source:    f.Source(),
				DataType:  dataType,
			},
			Config:   cfg,
			Taxonomy: taxonomy,
			Now:      now,
		})

		for _, s := range result.Skipped {
			uc.metrics.ObserveSkippedRow(f.Source(), string(s.Reason))
		}
		perSource[i] = entity.SourceRecords{Source: f.Source(), Records: result.Records}
		summaries[i] = SourceSummary{
			Source:        f.Source(),
			FetchedCount:  len(rows[i]),
			ImportedCount: len(result.Records),
			Skipped:       result.Skipped,
		}
	}

	merged := rollup.MergeSources(perSource)
	if len(merged) > 0 {
		if err := uc.recordRepo.BulkCreate(ctx, merged); err != nil {
			return nil, fmt.Errorf("failed to store canonical records: %w", err)
		}
		if err := uc.cache.InvalidateTenant(ctx, input.TenantID); err != nil {
			slog.Warn("Failed to invalidate rollup cache",
				"tenantID", input.TenantID,
				"error", err,
			)
		}
	}

	slog.Info("Source sync completed",
		"tenantID", input.TenantID,
		"importID", importID,
		"sources", len(uc.fetchers),
		"importedCount", len(merged),
	)

	return &SyncSourcesOutput{
		ImportID:      importID,
		ImportedCount: len(merged),
		Sources:       summaries,
		SyncedAt:      now,
	}, nil
}

// fetchAll reads every integration concurrently. rows[i] belongs to fetchers[i].
func (uc *SyncSourcesUseCase) fetchAll(ctx context.Context, tenantID uuid.UUID) ([][]entity.RawRecord, error) {
	rows := make([][]entity.RawRecord, len(uc.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range uc.fetchers {
		i, f := i, f
		g.Go(func() error {
			started := time.Now()
			fetched, err := f.Fetch(gctx, tenantID)
			uc.metrics.ObserveSourceFetch(f.Source(), err == nil, time.Since(started))
			if err != nil {
				return domainerror.NewImportError(
					domainerror.ErrCodeSourceFetchFailed,
					fmt.Sprintf("failed to fetch from %s", f.Source()),
					errors.Join(domainerror.ErrSourceFetchFailed, err),
				)
			}
			rows[i] = fetched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (uc *SyncSourcesUseCase) loadConfig(ctx context.Context, tenantID uuid.UUID) (valueobject.TransformConfig, error) {
	saved, err := uc.mappingRepo.FindByTenant(ctx, tenantID)
	if errors.Is(err, domainerror.ErrMappingConfigNotFound) {
		return valueobject.DefaultTransformConfig(), nil
	}
	if err != nil {
		return valueobject.TransformConfig{}, fmt.Errorf("failed to load mapping config: %w", err)
	}

	cfg := saved.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, domainerror.NewImportError(
			domainerror.ErrCodeInvalidTransformConfig,
			err.Error(),
			domainerror.ErrInvalidTransformConfig,
		)
	}
	return cfg, nil
}
