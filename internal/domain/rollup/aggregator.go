// Package rollup aggregates canonical records into the P&L tree.
package rollup

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// Aggregate builds the P&L tree for records inside dateRange whose data type
// is in dataTypes. An empty dataTypes slice admits every data type.
//
// Each record adds its amount to its section and to every node along the
// contiguous prefix of its category path, so parent totals include all
// descendants. Records whose section is neither Revenue nor Expenses are
// left out of the totals. Decimal sums make the result independent of
// record order.
func Aggregate(records []*entity.CanonicalRecord, dateRange valueobject.DateRange, dataTypes []entity.DataType) *entity.Rollup {
	result := entity.NewRollup()
	admit := dataTypeSet(dataTypes)

	for _, record := range records {
		if record == nil || !dateRange.Contains(record.Date) {
			continue
		}
		if admit != nil && !admit[record.DataType] {
			continue
		}
		add(result, record)
	}

	return result
}

func add(result *entity.Rollup, record *entity.CanonicalRecord) {
	path := record.ContiguousPath()
	if len(path) == 0 {
		return
	}

	var node *entity.RollupNode
	switch path[0] {
	case entity.SectionRevenue:
		node = result.Revenue
	case entity.SectionExpenses:
		node = result.Expenses
	default:
		return
	}

	credit(node, record.Amount)
	for _, label := range path[1:] {
		node = node.Child(label)
		credit(node, record.Amount)
	}
	node.Direct = node.Direct.Add(record.Amount)
}

func credit(node *entity.RollupNode, amount decimal.Decimal) {
	node.Total = node.Total.Add(amount)
	node.RecordCount++
}

func dataTypeSet(dataTypes []entity.DataType) map[entity.DataType]bool {
	if len(dataTypes) == 0 {
		return nil
	}
	set := make(map[entity.DataType]bool, len(dataTypes))
	for _, dt := range dataTypes {
		set[dt] = true
	}
	return set
}
