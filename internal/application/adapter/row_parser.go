// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"io"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// FileFormat identifies an uploaded file's layout.
type FileFormat string

const (
	FileFormatCSV  FileFormat = "csv"
	FileFormatXLSX FileFormat = "xlsx"
)

// ParseOptions controls how an uploaded file is read.
type ParseOptions struct {
	Format   FileFormat
	Encoding string // Text encoding of CSV files; empty means UTF-8
}

// RowParser turns an uploaded file into raw rows keyed by the header row.
type RowParser interface {
	Parse(ctx context.Context, r io.Reader, opts ParseOptions) ([]entity.RawRecord, error)
}
