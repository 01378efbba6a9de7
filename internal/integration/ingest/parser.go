// Package ingest turns uploaded files into raw rows for the transformation pipeline.
package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// rowParser implements the adapter.RowParser interface.
type rowParser struct{}

// NewRowParser creates a parser for CSV and XLSX uploads.
func NewRowParser() adapter.RowParser {
	return &rowParser{}
}

// Parse reads the whole file and returns one RawRecord per non-blank data row.
func (p *rowParser) Parse(ctx context.Context, r io.Reader, opts adapter.ParseOptions) ([]entity.RawRecord, error) {
	var (
		table [][]string
		err   error
	)

	switch opts.Format {
	case adapter.FileFormatCSV:
		table, err = readCSV(r, opts.Encoding)
	case adapter.FileFormatXLSX:
		table, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return toRawRecords(table), nil
}

// toRawRecords treats the first row as the header. Rows whose cells are all
// blank are skipped.
func toRawRecords(table [][]string) []entity.RawRecord {
	if len(table) == 0 {
		return []entity.RawRecord{}
	}

	headers := make([]string, len(table[0]))
	for i, h := range table[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	records := make([]entity.RawRecord, 0, len(table)-1)
	for _, row := range table[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, entity.NewRawRecordFromStrings(headers, row))
	}
	return records
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
