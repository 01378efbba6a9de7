package transform

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

var fixedNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newInput(cfg valueobject.TransformConfig, rows ...entity.RawRecord) Input {
	return Input{
		Rows: rows,
		Metadata: entity.ImportMetadata{
			ImportID:  uuid.New(),
			TenantID:  uuid.New(),
			CreatedBy: uuid.New(),
			Source:    entity.SourceCSV,
			DataType:  entity.DataTypeActual,
		},
		Config: cfg,
		Now:    fixedNow,
	}
}

func TestTransform(t *testing.T) {
	t.Run("static revenue row", func(t *testing.T) {
		cfg := valueobject.TransformConfig{Section: entity.SectionRevenue, SectionMappingType: valueobject.SectionMappingStatic}
		in := newInput(cfg, entity.NewRawRecord(
			str("Date", "2024-01-05"),
			str("Description", "Consulting Fee"),
			str("Amount", "1500"),
		))

		result := Transform(in)

		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(result.Records))
		}
		r := result.Records[0]
		if !r.Amount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected amount 1500, got %s", r.Amount)
		}
		if !reflect.DeepEqual(r.CategoryPath, []string{"Revenue"}) {
			t.Errorf("expected path [Revenue], got %q", r.CategoryPath)
		}
		if r.CategoryID != entity.UncategorizedID {
			t.Errorf("expected uncategorized, got %s", r.CategoryID)
		}
		if r.TenantID != in.Metadata.TenantID || r.ImportID != in.Metadata.ImportID || r.CreatedBy != in.Metadata.CreatedBy {
			t.Error("expected import metadata to be copied onto the record")
		}
		if r.Source != entity.SourceCSV || r.DataType != entity.DataTypeActual {
			t.Errorf("unexpected source/data type: %s/%s", r.Source, r.DataType)
		}
		if !r.CreatedAt.Equal(fixedNow) {
			t.Errorf("expected CreatedAt %s, got %s", fixedNow, r.CreatedAt)
		}
	})

	t.Run("column mode with hierarchy", func(t *testing.T) {
		cfg := valueobject.TransformConfig{
			Section:            entity.SectionExpenses,
			SectionMappingType: valueobject.SectionMappingColumn,
			SectionColumn:      "Type",
			HierarchyMappings: []valueobject.HierarchyMapping{
				{SourceColumn: "Dept", Level: 2},
				{SourceColumn: "Vendor", Level: 3},
			},
		}
		in := newInput(cfg, entity.NewRawRecord(
			str("date", "2024-02-01"),
			str("name", "Rent"),
			str("amount", "-2000"),
			str("Type", "Operating Expense"),
			str("Dept", "Ops"),
			str("Vendor", "Landlord Co"),
		))

		result := Transform(in)

		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(result.Records))
		}
		r := result.Records[0]
		if !reflect.DeepEqual(r.CategoryPath, []string{"Expenses", "Ops", "Landlord Co"}) {
			t.Errorf("unexpected path %q", r.CategoryPath)
		}
		if !r.Amount.Equal(decimal.NewFromInt(-2000)) {
			t.Errorf("expected amount -2000, got %s", r.Amount)
		}
		if r.Name != "Rent" {
			t.Errorf("expected name Rent, got %s", r.Name)
		}
	})

	t.Run("unparseable date is skipped", func(t *testing.T) {
		in := newInput(valueobject.DefaultTransformConfig(),
			entity.NewRawRecord(str("Date", "not a date"), str("Amount", "5")),
			entity.NewRawRecord(str("Date", "2024-01-01"), str("Amount", "7")),
		)

		result := Transform(in)

		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(result.Records))
		}
		if len(result.Skipped) != 1 {
			t.Fatalf("expected 1 skipped row, got %d", len(result.Skipped))
		}
		skipped := result.Skipped[0]
		if skipped.RowIndex != 0 || skipped.Reason != SkipReasonUnparseableDate || skipped.Value != "not a date" {
			t.Errorf("unexpected skipped row %+v", skipped)
		}
	})

	t.Run("unparseable amount is skipped", func(t *testing.T) {
		in := newInput(valueobject.DefaultTransformConfig(),
			entity.NewRawRecord(str("Date", "2024-01-01"), str("Amount", "abc")),
		)

		result := Transform(in)

		if len(result.Records) != 0 {
			t.Fatalf("expected no records, got %d", len(result.Records))
		}
		if len(result.Skipped) != 1 || result.Skipped[0].Reason != SkipReasonUnparseableAmount {
			t.Errorf("expected one unparseable_amount skip, got %+v", result.Skipped)
		}
	})

	t.Run("absent amount and name", func(t *testing.T) {
		in := newInput(valueobject.DefaultTransformConfig(),
			entity.NewRawRecord(str("Date", "2024-01-01")),
		)

		result := Transform(in)

		if len(result.Records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(result.Records))
		}
		r := result.Records[0]
		if !r.Amount.IsZero() {
			t.Errorf("expected zero amount, got %s", r.Amount)
		}
		if r.Name != NameFallback {
			t.Errorf("expected name %s, got %s", NameFallback, r.Name)
		}
	})

	t.Run("taxonomy match sets category and section hint", func(t *testing.T) {
		consulting := &entity.TaxonomyCategory{ID: uuid.New(), Name: "Consulting", Keywords: []string{"consult"}, Section: entity.SectionRevenue}
		in := newInput(valueobject.DefaultTransformConfig(),
			entity.NewRawRecord(str("Date", "2024-01-01"), str("Description", "Consulting retainer"), str("Amount", "100")),
		)
		in.Taxonomy = []*entity.TaxonomyCategory{consulting}

		result := Transform(in)

		r := result.Records[0]
		if r.CategoryID != consulting.ID.String() {
			t.Errorf("expected category %s, got %s", consulting.ID, r.CategoryID)
		}
		if r.Section() != entity.SectionRevenue {
			t.Errorf("expected section Revenue, got %s", r.Section())
		}
	})

	t.Run("row data type overrides import default", func(t *testing.T) {
		in := newInput(valueobject.DefaultTransformConfig(),
			entity.NewRawRecord(str("Date", "2024-01-01"), str("Amount", "1"), str("Scenario", "Budget")),
			entity.NewRawRecord(str("Date", "2024-01-01"), str("Amount", "1"), str("DataType", "bogus")),
		)

		result := Transform(in)

		if result.Records[0].DataType != entity.DataTypeBudget {
			t.Errorf("expected budget, got %s", result.Records[0].DataType)
		}
		if result.Records[1].DataType != entity.DataTypeActual {
			t.Errorf("expected actual fallback, got %s", result.Records[1].DataType)
		}
	})

	t.Run("natural id yields stable record id", func(t *testing.T) {
		row := entity.NewRawRecord(str("id", "txn-42"), str("Date", "2024-01-01"), str("Amount", "1"))
		first := newInput(valueobject.DefaultTransformConfig(), row)
		second := first
		second.Metadata.ImportID = uuid.New()

		a := Transform(first).Records[0]
		b := Transform(second).Records[0]

		if a.ID != b.ID {
			t.Errorf("expected the same id across imports, got %s and %s", a.ID, b.ID)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		result := Transform(newInput(valueobject.DefaultTransformConfig()))

		if len(result.Records) != 0 || len(result.Skipped) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}
