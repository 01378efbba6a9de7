// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RollupNode is one level of the P&L tree.
// Total always equals Direct plus the sum of the children's totals.
type RollupNode struct {
	Label       string                 `json:"label"`
	Total       decimal.Decimal        `json:"total"`
	Direct      decimal.Decimal        `json:"direct"`
	RecordCount int                    `json:"record_count"`
	Children    map[string]*RollupNode `json:"children"`
}

// NewRollupNode creates an empty node.
func NewRollupNode(label string) *RollupNode {
	return &RollupNode{
		Label:    label,
		Total:    decimal.Zero,
		Direct:   decimal.Zero,
		Children: make(map[string]*RollupNode),
	}
}

// Child returns the child with the given label, creating it on demand.
func (n *RollupNode) Child(label string) *RollupNode {
	child, ok := n.Children[label]
	if !ok {
		child = NewRollupNode(label)
		n.Children[label] = child
	}
	return child
}

// SortedChildren returns the children ordered by label.
func (n *RollupNode) SortedChildren() []*RollupNode {
	children := make([]*RollupNode, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Label < children[j].Label
	})
	return children
}

// Rollup is the aggregated P&L for a tenant, range, and data type filter.
type Rollup struct {
	Revenue  *RollupNode `json:"revenue"`
	Expenses *RollupNode `json:"expenses"`
}

// NewRollup returns a rollup with zero-valued Revenue and Expenses sections.
func NewRollup() *Rollup {
	return &Rollup{
		Revenue:  NewRollupNode(SectionRevenue),
		Expenses: NewRollupNode(SectionExpenses),
	}
}

// NetIncome is derived on every call and never stored.
func (r *Rollup) NetIncome() decimal.Decimal {
	return r.Revenue.Total.Sub(r.Expenses.Total)
}
