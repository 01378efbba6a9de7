package dto

import (
	"github.com/finance-tracker/pnl/internal/application/usecase/report"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// RollupNodeResponse represents one level of the P&L tree.
// Children are ordered by label.
type RollupNodeResponse struct {
	Label       string               `json:"label"`
	Total       string               `json:"total"`
	Direct      string               `json:"direct"`
	RecordCount int                  `json:"record_count"`
	Children    []RollupNodeResponse `json:"children"`
}

// ProfitAndLossResponse represents the P&L report.
type ProfitAndLossResponse struct {
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	PeriodLabel string             `json:"period_label"`
	DataTypes   []string           `json:"data_types"`
	Revenue     RollupNodeResponse `json:"revenue"`
	Expenses    RollupNodeResponse `json:"expenses"`
	NetIncome   string             `json:"net_income"`
	Cached      bool               `json:"cached"`
}

// ToRollupNodeResponse converts a rollup node and its subtree.
func ToRollupNodeResponse(node *entity.RollupNode) RollupNodeResponse {
	if node == nil {
		return RollupNodeResponse{Total: "0", Direct: "0", Children: []RollupNodeResponse{}}
	}

	sorted := node.SortedChildren()
	children := make([]RollupNodeResponse, 0, len(sorted))
	for _, child := range sorted {
		children = append(children, ToRollupNodeResponse(child))
	}

	return RollupNodeResponse{
		Label:       node.Label,
		Total:       node.Total.String(),
		Direct:      node.Direct.String(),
		RecordCount: node.RecordCount,
		Children:    children,
	}
}

// ToProfitAndLossResponse converts the use case output to its DTO.
func ToProfitAndLossResponse(output *report.GetProfitAndLossOutput) ProfitAndLossResponse {
	dataTypes := make([]string, 0, len(output.DataTypes))
	for _, dt := range output.DataTypes {
		dataTypes = append(dataTypes, string(dt))
	}

	return ProfitAndLossResponse{
		StartDate:   output.StartDate.Format("2006-01-02"),
		EndDate:     output.EndDate.Format("2006-01-02"),
		PeriodLabel: output.PeriodLabel,
		DataTypes:   dataTypes,
		Revenue:     ToRollupNodeResponse(output.Revenue),
		Expenses:    ToRollupNodeResponse(output.Expenses),
		NetIncome:   output.NetIncome.String(),
		Cached:      output.Cached,
	}
}
