package dto

import (
	"time"

	"github.com/finance-tracker/pnl/internal/application/usecase/sourcesync"
)

// SyncSourcesRequest represents the optional body of a sync request.
type SyncSourcesRequest struct {
	DataType string `json:"data_type,omitempty"`
}

// SourceSummaryResponse reports what one integration contributed.
type SourceSummaryResponse struct {
	Source        string               `json:"source"`
	FetchedCount  int                  `json:"fetched_count"`
	ImportedCount int                  `json:"imported_count"`
	SkippedCount  int                  `json:"skipped_count"`
	Skipped       []SkippedRowResponse `json:"skipped"`
}

// SyncSourcesResponse represents the result of a multi-source sync.
type SyncSourcesResponse struct {
	ImportID      string                  `json:"import_id"`
	ImportedCount int                     `json:"imported_count"`
	Sources       []SourceSummaryResponse `json:"sources"`
	SyncedAt      time.Time               `json:"synced_at"`
}

// ToSyncSourcesResponse converts the use case output to its DTO.
func ToSyncSourcesResponse(output *sourcesync.SyncSourcesOutput) SyncSourcesResponse {
	sources := make([]SourceSummaryResponse, 0, len(output.Sources))
	for _, s := range output.Sources {
		sources = append(sources, SourceSummaryResponse{
			Source:        string(s.Source),
			FetchedCount:  s.FetchedCount,
			ImportedCount: s.ImportedCount,
			SkippedCount:  len(s.Skipped),
			Skipped:       ToSkippedRowResponses(s.Skipped),
		})
	}
	return SyncSourcesResponse{
		ImportID:      output.ImportID.String(),
		ImportedCount: output.ImportedCount,
		Sources:       sources,
		SyncedAt:      output.SyncedAt,
	}
}
