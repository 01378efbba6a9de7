package transform

import (
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// BuildPath assigns the row a category path. Index 0 holds level1 and each
// mapping writes its column value at index level-1. Mappings are applied by
// their level, not their position. Unset intermediate levels stay "" so the
// aggregator can collapse the record to its contiguous prefix; a deeper label
// is never shifted up into a missing slot. Levels outside
// [2, valueobject.MaxHierarchyLevel] are ignored.
func BuildPath(row entity.RawRecord, level1 string, mappings []valueobject.HierarchyMapping) []string {
	type label struct {
		level int
		value string
	}

	labels := make([]label, 0, len(mappings))
	depth := 1
	for _, m := range mappings {
		if m.Level < 2 || m.Level > valueobject.MaxHierarchyLevel || m.SourceColumn == "" {
			continue
		}
		value, ok := ResolveString(row, m.SourceColumn)
		if !ok || value == "" {
			continue
		}
		labels = append(labels, label{level: m.Level, value: value})
		if m.Level > depth {
			depth = m.Level
		}
	}

	path := make([]string, depth)
	path[0] = level1
	for _, l := range labels {
		path[l.level-1] = l.value
	}
	return path
}
