// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"time"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// ImportMetrics records pipeline and report activity.
type ImportMetrics interface {
	ObserveImport(source entity.Source, imported, skipped int, duration time.Duration)
	ObserveSkippedRow(source entity.Source, reason string)
	ObserveSourceFetch(source entity.Source, success bool, duration time.Duration)
	ObserveRollup(cacheHit bool, records int, duration time.Duration)
}
