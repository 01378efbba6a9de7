package importing

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// ImportFileInput represents an uploaded CSV or XLSX file.
type ImportFileInput struct {
	TenantID uuid.UUID
	ActorID  uuid.UUID
	Filename string
	File     io.Reader
	Source   entity.Source   // Optional, derived from the file type
	DataType entity.DataType // Optional
	Encoding string          // Optional CSV text encoding
	Config   *valueobject.TransformConfig
}

// ImportFileUseCase parses an uploaded file and imports its rows.
type ImportFileUseCase struct {
	parser   adapter.RowParser
	importer *ImportRecordsUseCase
}

// NewImportFileUseCase creates a new ImportFileUseCase instance.
func NewImportFileUseCase(parser adapter.RowParser, importer *ImportRecordsUseCase) *ImportFileUseCase {
	return &ImportFileUseCase{
		parser:   parser,
		importer: importer,
	}
}

// Execute parses the file and delegates to ImportRecordsUseCase.
func (uc *ImportFileUseCase) Execute(ctx context.Context, input ImportFileInput) (*ImportRecordsOutput, error) {
	format, defaultSource, ok := detectFormat(input.Filename)
	if !ok {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeUnsupportedFileType,
			"file must be a .csv or .xlsx file",
			domainerror.ErrUnsupportedFileType,
		)
	}

	rows, err := uc.parser.Parse(ctx, input.File, adapter.ParseOptions{
		Format:   format,
		Encoding: input.Encoding,
	})
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeUnreadableFile,
			"could not read rows from the uploaded file",
			err,
		)
	}

	source := input.Source
	if source == "" {
		source = defaultSource
	}

	return uc.importer.Execute(ctx, ImportRecordsInput{
		TenantID: input.TenantID,
		ActorID:  input.ActorID,
		Source:   source,
		DataType: input.DataType,
		Rows:     rows,
		Config:   input.Config,
	})
}

func detectFormat(filename string) (adapter.FileFormat, entity.Source, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return adapter.FileFormatCSV, entity.SourceCSV, true
	case ".xlsx":
		return adapter.FileFormatXLSX, entity.SourceSpreadsheet, true
	default:
		return "", "", false
	}
}
