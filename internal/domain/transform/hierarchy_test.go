package transform

import (
	"reflect"
	"testing"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

func TestBuildPath(t *testing.T) {
	tests := []struct {
		name     string
		row      entity.RawRecord
		mappings []valueobject.HierarchyMapping
		expected []string
	}{
		{
			name:     "no mappings",
			row:      entity.NewRawRecord(str("Dept", "Ops")),
			expected: []string{"Expenses"},
		},
		{
			name: "mappings applied by level not position",
			row:  entity.NewRawRecord(str("Dept", "Ops"), str("Vendor", "Acme")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Vendor", Level: 3},
				{SourceColumn: "Dept", Level: 2},
			},
			expected: []string{"Expenses", "Ops", "Acme"},
		},
		{
			name: "missing intermediate level leaves a gap",
			row:  entity.NewRawRecord(str("Vendor", "Acme")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: 2},
				{SourceColumn: "Vendor", Level: 3},
			},
			expected: []string{"Expenses", "", "Acme"},
		},
		{
			name: "missing deepest level is trimmed",
			row:  entity.NewRawRecord(str("Dept", "Ops")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: 2},
				{SourceColumn: "Vendor", Level: 3},
			},
			expected: []string{"Expenses", "Ops"},
		},
		{
			name: "level one mapping is ignored",
			row:  entity.NewRawRecord(str("Dept", "Ops")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: 1},
			},
			expected: []string{"Expenses"},
		},
		{
			name: "level past the deepest is ignored",
			row:  entity.NewRawRecord(str("Dept", "Ops"), str("Category", "Travel")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: 2},
				{SourceColumn: "Category", Level: 1 << 62},
			},
			expected: []string{"Expenses", "Ops"},
		},
		{
			name: "deepest allowed level",
			row:  entity.NewRawRecord(str("Dept", "Ops")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: valueobject.MaxHierarchyLevel},
			},
			expected: append(append([]string{"Expenses"}, make([]string, valueobject.MaxHierarchyLevel-2)...), "Ops"),
		},
		{
			name: "unresolved deep level allocates nothing past the last label",
			row:  entity.NewRawRecord(str("Dept", "Ops")),
			mappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: 2},
				{SourceColumn: "Vendor", Level: valueobject.MaxHierarchyLevel},
			},
			expected: []string{"Expenses", "Ops"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPath(tt.row, "Expenses", tt.mappings)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
