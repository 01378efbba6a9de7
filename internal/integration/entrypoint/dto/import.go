package dto

import (
	"time"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/transform"
)

// ImportRecordsRequest represents the request body for a JSON row import.
type ImportRecordsRequest struct {
	Source   string                   `json:"source" binding:"required"`
	DataType string                   `json:"data_type,omitempty"`
	Rows     []map[string]interface{} `json:"rows" binding:"required,min=1"`
	Config   *MappingConfigRequest    `json:"config,omitempty"`
}

// SkippedRowResponse describes a row dropped by the validity gate.
type SkippedRowResponse struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
	Value    string `json:"value"`
}

// ImportRecordsResponse represents the result of a persisted import.
type ImportRecordsResponse struct {
	ImportID      string               `json:"import_id"`
	ImportedCount int                  `json:"imported_count"`
	SkippedCount  int                  `json:"skipped_count"`
	Skipped       []SkippedRowResponse `json:"skipped"`
	ImportedAt    time.Time            `json:"imported_at"`
}

// CanonicalRecordResponse represents a normalized record.
type CanonicalRecordResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Amount       string   `json:"amount"`
	Source       string   `json:"source"`
	DataType     string   `json:"data_type"`
	CategoryID   string   `json:"category_id"`
	CategoryPath []string `json:"category_path"`
}

// PreviewImportResponse represents a transformation that was not persisted.
type PreviewImportResponse struct {
	Records      []CanonicalRecordResponse `json:"records"`
	SkippedCount int                       `json:"skipped_count"`
	Skipped      []SkippedRowResponse      `json:"skipped"`
}

// ToRawRecords converts the decoded JSON rows into raw records.
func (r ImportRecordsRequest) ToRawRecords() []entity.RawRecord {
	rows := make([]entity.RawRecord, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, entity.NewRawRecordFromMap(row))
	}
	return rows
}

// ToSkippedRowResponses converts pipeline diagnostics to DTOs.
func ToSkippedRowResponses(skipped []transform.SkippedRow) []SkippedRowResponse {
	out := make([]SkippedRowResponse, 0, len(skipped))
	for _, s := range skipped {
		out = append(out, SkippedRowResponse{
			RowIndex: s.RowIndex,
			Reason:   string(s.Reason),
			Value:    s.Value,
		})
	}
	return out
}

// ToCanonicalRecordResponse converts a CanonicalRecord entity to its DTO.
func ToCanonicalRecordResponse(r *entity.CanonicalRecord) CanonicalRecordResponse {
	path := r.CategoryPath
	if path == nil {
		path = []string{}
	}
	return CanonicalRecordResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		Date:         r.Date.Format("2006-01-02"),
		Amount:       r.Amount.String(),
		Source:       string(r.Source),
		DataType:     string(r.DataType),
		CategoryID:   r.CategoryID,
		CategoryPath: path,
	}
}

// ToPreviewImportResponse builds the preview response.
func ToPreviewImportResponse(records []*entity.CanonicalRecord, skipped []transform.SkippedRow) PreviewImportResponse {
	out := make([]CanonicalRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToCanonicalRecordResponse(r))
	}
	return PreviewImportResponse{
		Records:      out,
		SkippedCount: len(skipped),
		Skipped:      ToSkippedRowResponses(skipped),
	}
}
