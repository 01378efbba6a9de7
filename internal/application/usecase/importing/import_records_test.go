package importing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/application/adapter/adaptermock"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/transform"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

func row(pairs ...string) entity.RawRecord {
	fields := make([]entity.RawField, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fields = append(fields, entity.RawField{Key: pairs[i], Value: entity.StringValue(pairs[i+1])})
	}
	return entity.NewRawRecord(fields...)
}

type ImportRecordsTestSuite struct {
	suite.Suite
	ctx          context.Context
	tenantID     uuid.UUID
	recordRepo   *adaptermock.CanonicalRecordRepository
	taxonomyRepo *adaptermock.TaxonomyRepository
	mappingRepo  *adaptermock.MappingConfigRepository
	cache        *adaptermock.RollupCache
	useCase      *ImportRecordsUseCase
}

func TestImportRecordsSuite(t *testing.T) {
	suite.Run(t, new(ImportRecordsTestSuite))
}

func (s *ImportRecordsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tenantID = uuid.New()
	s.recordRepo = new(adaptermock.CanonicalRecordRepository)
	s.taxonomyRepo = new(adaptermock.TaxonomyRepository)
	s.mappingRepo = new(adaptermock.MappingConfigRepository)
	s.cache = new(adaptermock.RollupCache)
	s.useCase = NewImportRecordsUseCase(
		s.recordRepo, s.taxonomyRepo, s.mappingRepo, s.cache, adaptermock.NopMetrics{}, entity.DataTypeActual,
	)
}

func (s *ImportRecordsTestSuite) TestImportsAndInvalidatesCache() {
	software := &entity.TaxonomyCategory{ID: uuid.New(), TenantID: s.tenantID, Name: "Software", Keywords: []string{"github"}}
	s.taxonomyRepo.On("FindByTenant", s.ctx, s.tenantID).Return([]*entity.TaxonomyCategory{software}, nil)
	s.mappingRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, domainerror.ErrMappingConfigNotFound)

	var stored []*entity.CanonicalRecord
	s.recordRepo.On("BulkCreate", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]*entity.CanonicalRecord) }).
		Return(nil)
	s.cache.On("InvalidateTenant", s.ctx, s.tenantID).Return(nil)

	out, err := s.useCase.Execute(s.ctx, ImportRecordsInput{
		TenantID: s.tenantID,
		ActorID:  uuid.New(),
		Source:   entity.SourceCSV,
		Rows: []entity.RawRecord{
			row("Date", "2024-01-05", "Description", "GitHub seats", "Amount", "$1,200.00"),
			row("Date", "garbage", "Description", "Broken", "Amount", "10"),
		},
	})

	s.Require().NoError(err)
	s.Equal(1, out.ImportedCount)
	s.Equal(1, out.SkippedCount)
	s.Equal(transform.SkipReasonUnparseableDate, out.Skipped[0].Reason)
	s.Require().Len(stored, 1)
	s.True(stored[0].Amount.Equal(decimal.NewFromInt(1200)))
	s.Equal(software.ID.String(), stored[0].CategoryID)
	s.Equal(out.ImportID, stored[0].ImportID)
	s.Equal([]string{entity.SectionExpenses}, stored[0].CategoryPath)
	s.cache.AssertExpectations(s.T())
}

func (s *ImportRecordsTestSuite) TestUsesSavedMapping() {
	saved := &valueobject.TransformConfig{
		Section:            entity.SectionExpenses,
		SectionMappingType: valueobject.SectionMappingColumn,
		SectionColumn:      "Type",
		HierarchyMappings:  []valueobject.HierarchyMapping{{SourceColumn: "Category", Level: 2}},
	}
	s.taxonomyRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, nil)
	s.mappingRepo.On("FindByTenant", s.ctx, s.tenantID).Return(saved, nil)

	var stored []*entity.CanonicalRecord
	s.recordRepo.On("BulkCreate", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]*entity.CanonicalRecord) }).
		Return(nil)
	s.cache.On("InvalidateTenant", s.ctx, s.tenantID).Return(nil)

	_, err := s.useCase.Execute(s.ctx, ImportRecordsInput{
		TenantID: s.tenantID,
		Source:   entity.SourceCSV,
		DataType: entity.DataTypeBudget,
		Rows:     []entity.RawRecord{row("Type", "income", "Date", "2024-02-01", "Amount", "200", "Category", "Consulting")},
	})

	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal([]string{entity.SectionRevenue, "Consulting"}, stored[0].CategoryPath)
	s.Equal(entity.DataTypeBudget, stored[0].DataType)
}

func (s *ImportRecordsTestSuite) TestCacheFailureDoesNotFailImport() {
	s.taxonomyRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, nil)
	s.mappingRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, domainerror.ErrMappingConfigNotFound)
	s.recordRepo.On("BulkCreate", s.ctx, mock.Anything).Return(nil)
	s.cache.On("InvalidateTenant", s.ctx, s.tenantID).Return(errors.New("redis down"))

	out, err := s.useCase.Execute(s.ctx, ImportRecordsInput{
		TenantID: s.tenantID,
		Source:   entity.SourceCSV,
		Rows:     []entity.RawRecord{row("Date", "2024-01-01", "Amount", "1")},
	})

	s.Require().NoError(err)
	s.Equal(1, out.ImportedCount)
}

func (s *ImportRecordsTestSuite) TestAllRowsSkippedStoresNothing() {
	s.taxonomyRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, nil)
	s.mappingRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, domainerror.ErrMappingConfigNotFound)

	out, err := s.useCase.Execute(s.ctx, ImportRecordsInput{
		TenantID: s.tenantID,
		Source:   entity.SourceCSV,
		Rows:     []entity.RawRecord{row("Date", "2024-01-01", "Amount", "abc")},
	})

	s.Require().NoError(err)
	s.Equal(0, out.ImportedCount)
	s.Equal(1, out.SkippedCount)
	s.recordRepo.AssertNotCalled(s.T(), "BulkCreate", mock.Anything, mock.Anything)
	s.cache.AssertNotCalled(s.T(), "InvalidateTenant", mock.Anything, mock.Anything)
}

func (s *ImportRecordsTestSuite) TestRepositoryFailureIsReturned() {
	s.taxonomyRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, nil)
	s.mappingRepo.On("FindByTenant", s.ctx, s.tenantID).Return(nil, domainerror.ErrMappingConfigNotFound)
	s.recordRepo.On("BulkCreate", s.ctx, mock.Anything).Return(errors.New("tx aborted"))

	_, err := s.useCase.Execute(s.ctx, ImportRecordsInput{
		TenantID: s.tenantID,
		Source:   entity.SourceCSV,
		Rows:     []entity.RawRecord{row("Date", "2024-01-01", "Amount", "1")},
	})

	s.Require().Error(err)
	s.Contains(err.Error(), "tx aborted")
	s.cache.AssertNotCalled(s.T(), "InvalidateTenant", mock.Anything, mock.Anything)
}

func (s *ImportRecordsTestSuite) TestValidation() {
	tests := []struct {
		name     string
		input    ImportRecordsInput
		expected domainerror.ImportErrorCode
	}{
		{
			name:     "unknown source",
			input:    ImportRecordsInput{TenantID: s.tenantID, Source: "fax", Rows: []entity.RawRecord{row("a", "b")}},
			expected: domainerror.ErrCodeInvalidSource,
		},
		{
			name:     "unknown data type",
			input:    ImportRecordsInput{TenantID: s.tenantID, Source: entity.SourceCSV, DataType: "guess", Rows: []entity.RawRecord{row("a", "b")}},
			expected: domainerror.ErrCodeInvalidDataType,
		},
		{
			name:     "no rows",
			input:    ImportRecordsInput{TenantID: s.tenantID, Source: entity.SourceCSV},
			expected: domainerror.ErrCodeEmptyImport,
		},
		{
			name:     "missing tenant",
			input:    ImportRecordsInput{Source: entity.SourceCSV, Rows: []entity.RawRecord{row("a", "b")}},
			expected: domainerror.ErrCodeMissingImportFields,
		},
		{
			name: "invalid config override",
			input: ImportRecordsInput{
				TenantID: s.tenantID,
				Source:   entity.SourceCSV,
				Rows:     []entity.RawRecord{row("a", "b")},
				Config:   &valueobject.TransformConfig{Section: "Assets"},
			},
			expected: domainerror.ErrCodeInvalidTransformConfig,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.useCase.Execute(s.ctx, tt.input)

			var importErr *domainerror.ImportError
			s.Require().True(errors.As(err, &importErr), "expected ImportError, got %v", err)
			s.Equal(tt.expected, importErr.Code)
		})
	}
}

type PreviewImportTestSuite struct {
	suite.Suite
}

func TestPreviewImportSuite(t *testing.T) {
	suite.Run(t, new(PreviewImportTestSuite))
}

func (s *PreviewImportTestSuite) TestPreviewDoesNotPersist() {
	ctx := context.Background()
	tenantID := uuid.New()
	taxonomyRepo := new(adaptermock.TaxonomyRepository)
	mappingRepo := new(adaptermock.MappingConfigRepository)
	taxonomyRepo.On("FindByTenant", ctx, tenantID).Return(nil, nil)

	uc := NewPreviewImportUseCase(taxonomyRepo, mappingRepo, entity.DataTypeActual)

	out, err := uc.Execute(ctx, ImportRecordsInput{
		TenantID: tenantID,
		Source:   entity.SourceSpreadsheet,
		Rows:     []entity.RawRecord{row("Date", "2024-03-01", "name", "Rent", "amount", "-900")},
		Config:   &valueobject.TransformConfig{Section: entity.SectionExpenses},
	})

	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal("Rent", out.Records[0].Name)
	s.Equal(entity.SourceSpreadsheet, out.Records[0].Source)
	mappingRepo.AssertNotCalled(s.T(), "FindByTenant", mock.Anything, mock.Anything)
}

type ImportFileTestSuite struct {
	suite.Suite
}

func TestImportFileSuite(t *testing.T) {
	suite.Run(t, new(ImportFileTestSuite))
}

func (s *ImportFileTestSuite) TestRejectsUnknownExtension() {
	uc := NewImportFileUseCase(new(adaptermock.RowParser), nil)

	_, err := uc.Execute(context.Background(), ImportFileInput{Filename: "ledger.pdf", File: strings.NewReader("")})

	var importErr *domainerror.ImportError
	s.Require().True(errors.As(err, &importErr))
	s.Equal(domainerror.ErrCodeUnsupportedFileType, importErr.Code)
}

func (s *ImportFileTestSuite) TestParseFailureIsUnreadable() {
	parser := new(adaptermock.RowParser)
	parser.On("Parse", mock.Anything, mock.Anything, adapter.ParseOptions{Format: adapter.FileFormatCSV, Encoding: "windows-1252"}).
		Return(nil, errors.New("bare quote"))
	uc := NewImportFileUseCase(parser, nil)

	_, err := uc.Execute(context.Background(), ImportFileInput{
		Filename: "ledger.CSV",
		File:     strings.NewReader("x"),
		Encoding: "windows-1252",
	})

	var importErr *domainerror.ImportError
	s.Require().True(errors.As(err, &importErr))
	s.Equal(domainerror.ErrCodeUnreadableFile, importErr.Code)
}

func (s *ImportFileTestSuite) TestXLSXDefaultsToSpreadsheetSource() {
	ctx := context.Background()
	tenantID := uuid.New()

	parser := new(adaptermock.RowParser)
	parser.On("Parse", ctx, mock.Anything, adapter.ParseOptions{Format: adapter.FileFormatXLSX}).
		Return([]entity.RawRecord{row("Date", "2024-01-01", "Amount", "12")}, nil)

	taxonomyRepo := new(adaptermock.TaxonomyRepository)
	taxonomyRepo.On("FindByTenant", ctx, tenantID).Return(nil, nil)
	mappingRepo := new(adaptermock.MappingConfigRepository)
	mappingRepo.On("FindByTenant", ctx, tenantID).Return(nil, domainerror.ErrMappingConfigNotFound)
	recordRepo := new(adaptermock.CanonicalRecordRepository)
	var stored []*entity.CanonicalRecord
	recordRepo.On("BulkCreate", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]*entity.CanonicalRecord) }).
		Return(nil)
	cache := new(adaptermock.RollupCache)
	cache.On("InvalidateTenant", ctx, tenantID).Return(nil)

	importer := NewImportRecordsUseCase(recordRepo, taxonomyRepo, mappingRepo, cache, adaptermock.NopMetrics{}, entity.DataTypeActual)
	uc := NewImportFileUseCase(parser, importer)

	out, err := uc.Execute(ctx, ImportFileInput{TenantID: tenantID, Filename: "q1.xlsx", File: strings.NewReader("")})

	s.Require().NoError(err)
	s.Equal(1, out.ImportedCount)
	s.Require().Len(stored, 1)
	s.Equal(entity.SourceSpreadsheet, stored[0].Source)
}
