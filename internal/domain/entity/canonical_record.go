// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source identifies the external integration a record originated from.
type Source string

const (
	SourceCSV               Source = "csv"
	SourceSchedulingSystem  Source = "scheduling-system"
	SourceBankingAggregator Source = "banking-aggregator"
	SourceSpreadsheet       Source = "spreadsheet"
)

// IsValid reports whether the source belongs to the closed set of known origins.
func (s Source) IsValid() bool {
	switch s {
	case SourceCSV, SourceSchedulingSystem, SourceBankingAggregator, SourceSpreadsheet:
		return true
	}
	return false
}

// DataType classifies a record as actual, budgeted, or forecast data.
type DataType string

const (
	DataTypeActual   DataType = "actual"
	DataTypeBudget   DataType = "budget"
	DataTypeForecast DataType = "forecast"
)

// ParseDataType parses a data type case-insensitively.
func ParseDataType(s string) (DataType, bool) {
	switch DataType(strings.ToLower(strings.TrimSpace(s))) {
	case DataTypeActual:
		return DataTypeActual, true
	case DataTypeBudget:
		return DataTypeBudget, true
	case DataTypeForecast:
		return DataTypeForecast, true
	}
	return "", false
}

// Top-level P&L sections. Level 1 of every category path.
const (
	SectionRevenue  = "Revenue"
	SectionExpenses = "Expenses"
)

// UncategorizedID is the category id assigned when no taxonomy keyword matches.
const UncategorizedID = "uncategorized"

// ImportMetadata describes the enclosing import a batch of raw rows belongs to.
type ImportMetadata struct {
	ImportID  uuid.UUID
	TenantID  uuid.UUID
	CreatedBy uuid.UUID
	Source    Source
	DataType  DataType // Default for rows that do not carry their own
}

// CanonicalRecord is a normalized, source-agnostic financial record ready for aggregation.
// Records are immutable once built; corrections produce new records.
type CanonicalRecord struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	ImportID     uuid.UUID
	Name         string
	Date         time.Time
	Amount       decimal.Decimal // Sign-preserving
	Source       Source
	DataType     DataType
	CategoryID   string
	CategoryPath []string // Index 0 is the section; empty entries are gaps
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
}

// Section returns the level-1 label of the record's category path.
func (r *CanonicalRecord) Section() string {
	if len(r.CategoryPath) == 0 {
		return ""
	}
	return r.CategoryPath[0]
}

// ContiguousPath returns the longest gap-free prefix of the category path.
// A missing intermediate level truncates everything below it.
func (r *CanonicalRecord) ContiguousPath() []string {
	for i, label := range r.CategoryPath {
		if label == "" {
			return r.CategoryPath[:i]
		}
	}
	return r.CategoryPath
}

// SourceRecords is the canonical output of one external integration.
type SourceRecords struct {
	Source  Source
	Records []*CanonicalRecord
}
