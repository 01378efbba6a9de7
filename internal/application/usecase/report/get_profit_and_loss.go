// Package report contains P&L reporting use cases.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/rollup"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// shardThreshold is the record count above which aggregation runs sharded.
const shardThreshold = 50000

// GetProfitAndLossInput represents the input for building a P&L report.
type GetProfitAndLossInput struct {
	TenantID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time         // Inclusive through the end of the day
	DataTypes []entity.DataType // Optional, defaults to actual
}

// GetProfitAndLossOutput represents a P&L report.
type GetProfitAndLossOutput struct {
	StartDate   time.Time
	EndDate     time.Time
	PeriodLabel string
	DataTypes   []entity.DataType
	Revenue     *entity.RollupNode
	Expenses    *entity.RollupNode
	NetIncome   decimal.Decimal
	Cached      bool
}

// GetProfitAndLossUseCase aggregates a tenant's canonical records into a P&L.
type GetProfitAndLossUseCase struct {
	recordRepo adapter.CanonicalRecordRepository
	cache      adapter.RollupCache
	metrics    adapter.ImportMetrics
	shards     int
}

// NewGetProfitAndLossUseCase creates a new GetProfitAndLossUseCase instance.
func NewGetProfitAndLossUseCase(
	recordRepo adapter.CanonicalRecordRepository,
	cache adapter.RollupCache,
	metrics adapter.ImportMetrics,
	shards int,
) *GetProfitAndLossUseCase {
	return &GetProfitAndLossUseCase{
		recordRepo: recordRepo,
		cache:      cache,
		metrics:    metrics,
		shards:     shards,
	}
}

// Execute builds the report, serving it from cache when possible.
func (uc *GetProfitAndLossUseCase) Execute(ctx context.Context, input GetProfitAndLossInput) (*GetProfitAndLossOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	dataTypes := input.DataTypes
	if len(dataTypes) == 0 {
		dataTypes = []entity.DataType{entity.DataTypeActual}
	}

	filter := adapter.RecordFilter{
		TenantID:  input.TenantID,
		DateRange: valueobject.DateRange{Start: input.StartDate, End: input.EndDate}.ThroughEndOfDay(),
		DataTypes: dataTypes,
	}

	started := time.Now()

	lookup, cacheErr := uc.cache.Get(ctx, filter)
	if cacheErr != nil {
		slog.Warn("Rollup cache read failed",
			"tenantID", input.TenantID,
			"error", cacheErr,
		)
	}

	result, hit := lookup.Rollup, lookup.Hit && cacheErr == nil
	records := 0
	if !hit {
		loaded, err := uc.recordRepo.FindForRollup(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to load canonical records: %w", err)
		}
		records = len(loaded)

		result, err = uc.aggregate(ctx, loaded, filter)
		if err != nil {
			return nil, err
		}

		// Without the generation from a successful read the entry could
		// outlive an invalidation, so nothing is stored.
		if cacheErr == nil {
			if err := uc.cache.Set(ctx, filter, lookup.Generation, result); err != nil {
				slog.Warn("Rollup cache write failed",
					"tenantID", input.TenantID,
					"error", err,
				)
			}
		}
	}

	uc.metrics.ObserveRollup(hit, records, time.Since(started))

	return &GetProfitAndLossOutput{
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		PeriodLabel: periodLabel(input.StartDate, input.EndDate),
		DataTypes:   dataTypes,
		Revenue:     result.Revenue,
		Expenses:    result.Expenses,
		NetIncome:   result.NetIncome(),
		Cached:      hit,
	}, nil
}

func (uc *GetProfitAndLossUseCase) aggregate(ctx context.Context, records []*entity.CanonicalRecord, filter adapter.RecordFilter) (*entity.Rollup, error) {
	if len(records) < shardThreshold {
		return rollup.Aggregate(records, filter.DateRange, filter.DataTypes), nil
	}
	result, err := rollup.AggregateSharded(ctx, records, filter.DateRange, filter.DataTypes, uc.shards)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate canonical records: %w", err)
	}
	return result, nil
}

// validateInput validates the input parameters.
func (uc *GetProfitAndLossUseCase) validateInput(input GetProfitAndLossInput) error {
	if input.StartDate.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if input.EndDate.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if input.EndDate.Before(input.StartDate) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	for _, dt := range input.DataTypes {
		if _, ok := entity.ParseDataType(string(dt)); !ok {
			return domainerror.NewReportError(
				domainerror.ErrCodeInvalidDataFilter,
				fmt.Sprintf("unknown data type %q", dt),
				domainerror.ErrInvalidDataType,
			)
		}
	}

	return nil
}
