package importing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/transform"
)

// ImportRecordsOutput represents the output of an import.
type ImportRecordsOutput struct {
	ImportID      uuid.UUID
	ImportedCount int
	SkippedCount  int
	Skipped       []transform.SkippedRow
	ImportedAt    time.Time
}

// ImportRecordsUseCase transforms raw rows and persists the canonical records.
type ImportRecordsUseCase struct {
	preparer
	recordRepo adapter.CanonicalRecordRepository
	cache      adapter.RollupCache
	metrics    adapter.ImportMetrics
}

// NewImportRecordsUseCase creates a new ImportRecordsUseCase instance.
func NewImportRecordsUseCase(
	recordRepo adapter.CanonicalRecordRepository,
	taxonomyRepo adapter.TaxonomyRepository,
	mappingRepo adapter.MappingConfigRepository,
	cache adapter.RollupCache,
	metrics adapter.ImportMetrics,
	defaultDataType entity.DataType,
) *ImportRecordsUseCase {
	return &ImportRecordsUseCase{
		preparer: preparer{
			taxonomyRepo:    taxonomyRepo,
			mappingRepo:     mappingRepo,
			defaultDataType: defaultDataType,
		},
		recordRepo: recordRepo,
		cache:      cache,
		metrics:    metrics,
	}
}

// Execute performs the import. Rows with an unparseable date or amount are
// reported in the output and never fail the batch.
func (uc *ImportRecordsUseCase) Execute(ctx context.Context, input ImportRecordsInput) (*ImportRecordsOutput, error) {
	started := time.Now()
	importID := uuid.New()

	in, err := uc.prepare(ctx, input, importID)
	if err != nil {
		return nil, err
	}

	result := transform.Transform(in)
	logSkipped(input.TenantID, input.Source, result.Skipped)
	for _, s := range result.Skipped {
		uc.metrics.ObserveSkippedRow(input.Source, string(s.Reason))
	}

	if len(result.Records) > 0 {
		if err := uc.recordRepo.BulkCreate(ctx, result.Records); err != nil {
			return nil, fmt.Errorf("failed to store canonical records: %w", err)
		}
		invalidate(ctx, uc.cache, input.TenantID)
	}

	uc.metrics.ObserveImport(input.Source, len(result.Records), len(result.Skipped), time.Since(started))
	slog.Info("Import completed",
		"tenantID", input.TenantID,
		"importID", importID,
		"source", input.Source,
		"importedCount", len(result.Records),
		"skippedCount", len(result.Skipped),
	)

	return &ImportRecordsOutput{
		ImportID:      importID,
		ImportedCount: len(result.Records),
		SkippedCount:  len(result.Skipped),
		Skipped:       result.Skipped,
		ImportedAt:    in.Now,
	}, nil
}

func logSkipped(tenantID uuid.UUID, source entity.Source, skipped []transform.SkippedRow) {
	for _, s := range skipped {
		slog.Warn("Row dropped by transformation",
			"tenantID", tenantID,
			"source", source,
			"row", s.RowIndex,
			"reason", s.Reason,
			"value", s.Value,
		)
	}
}

// invalidate drops the tenant's cached rollups. A cache failure is logged
// and left to expire by TTL; the records are already committed.
func invalidate(ctx context.Context, cache adapter.RollupCache, tenantID uuid.UUID) {
	if err := cache.InvalidateTenant(ctx, tenantID); err != nil {
		slog.Warn("Failed to invalidate rollup cache",
			"tenantID", tenantID,
			"error", err,
		)
	}
}
