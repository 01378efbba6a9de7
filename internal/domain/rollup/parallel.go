package rollup

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// AggregateSharded splits records into shards, aggregates them concurrently
// and merges the partial trees. The result equals Aggregate on the same input.
func AggregateSharded(
	ctx context.Context,
	records []*entity.CanonicalRecord,
	dateRange valueobject.DateRange,
	dataTypes []entity.DataType,
	shards int,
) (*entity.Rollup, error) {
	if shards <= 1 || len(records) < shards {
		return Aggregate(records, dateRange, dataTypes), nil
	}

	partials := make([]*entity.Rollup, shards)
	size := (len(records) + shards - 1) / shards

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < shards; i++ {
		start := i * size
		if start >= len(records) {
			partials[i] = entity.NewRollup()
			continue
		}
		end := start + size
		if end > len(records) {
			end = len(records)
		}

		i, shard := i, records[start:end]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[i] = Aggregate(shard, dateRange, dataTypes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Combine(partials...), nil
}

// Combine sums partial rollups node by node into a fresh rollup.
func Combine(parts ...*entity.Rollup) *entity.Rollup {
	result := entity.NewRollup()
	for _, part := range parts {
		if part == nil {
			continue
		}
		mergeNode(result.Revenue, part.Revenue)
		mergeNode(result.Expenses, part.Expenses)
	}
	return result
}

func mergeNode(dst, src *entity.RollupNode) {
	if src == nil {
		return
	}
	dst.Total = dst.Total.Add(src.Total)
	dst.Direct = dst.Direct.Add(src.Direct)
	dst.RecordCount += src.RecordCount
	for label, child := range src.Children {
		mergeNode(dst.Child(label), child)
	}
}
