package importing

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/transform"
)

// PreviewImportOutput represents the canonical records an import would produce.
type PreviewImportOutput struct {
	Records []*entity.CanonicalRecord
	Skipped []transform.SkippedRow
}

// PreviewImportUseCase runs the pipeline without persisting anything.
type PreviewImportUseCase struct {
	preparer
}

// NewPreviewImportUseCase creates a new PreviewImportUseCase instance.
func NewPreviewImportUseCase(
	taxonomyRepo adapter.TaxonomyRepository,
	mappingRepo adapter.MappingConfigRepository,
	defaultDataType entity.DataType,
) *PreviewImportUseCase {
	return &PreviewImportUseCase{
		preparer: preparer{
			taxonomyRepo:    taxonomyRepo,
			mappingRepo:     mappingRepo,
			defaultDataType: defaultDataType,
		},
	}
}

// Execute transforms the rows and returns the result.
func (uc *PreviewImportUseCase) Execute(ctx context.Context, input ImportRecordsInput) (*PreviewImportOutput, error) {
	in, err := uc.prepare(ctx, input, uuid.Nil)
	if err != nil {
		return nil, err
	}

	result := transform.Transform(in)

	return &PreviewImportOutput{
		Records: result.Records,
		Skipped: result.Skipped,
	}, nil
}
