package transform

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// SkipReason explains why a row produced no canonical record.
type SkipReason string

const (
	SkipReasonUnparseableDate   SkipReason = "unparseable_date"
	SkipReasonUnparseableAmount SkipReason = "unparseable_amount"
)

// SkippedRow reports a row dropped by the validity gate.
type SkippedRow struct {
	RowIndex int
	Reason   SkipReason
	Value    string // The raw value that failed to parse
}

// Input is everything one transformation run needs.
type Input struct {
	Rows     []entity.RawRecord
	Metadata entity.ImportMetadata
	Config   valueobject.TransformConfig
	Taxonomy []*entity.TaxonomyCategory
	Now      time.Time // Date fallback and CreatedAt
}

// Result holds the canonical records plus diagnostics for dropped rows.
type Result struct {
	Records []*entity.CanonicalRecord
	Skipped []SkippedRow
}

// recordNamespace seeds stable record ids for rows that carry a natural id.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:finance-tracker:pnl:canonical-record"))

// Transform normalizes every row into a CanonicalRecord. Rows whose date or
// amount cannot be parsed are dropped and reported in Result.Skipped; they
// never fail the batch. An empty input yields an empty result.
func Transform(in Input) Result {
	result := Result{
		Records: make([]*entity.CanonicalRecord, 0, len(in.Rows)),
	}

	defaultDataType := in.Metadata.DataType
	if defaultDataType == "" {
		defaultDataType = entity.DataTypeActual
	}

	for i, row := range in.Rows {
		name := NormalizeName(resolveOrNull(row, NameKeys))

		categoryID := entity.UncategorizedID
		matched, hasMatch := Match(name, in.Taxonomy)
		if hasMatch {
			categoryID = matched.ID.String()
		}

		level1 := sectionFor(row, in.Config, matched)
		path := BuildPath(row, level1, in.Config.HierarchyMappings)

		rawDate, _ := Resolve(row, DateKeys...)
		date, wasFallback := NormalizeDate(rawDate, in.Now)
		if wasFallback {
			result.Skipped = append(result.Skipped, SkippedRow{
				RowIndex: i,
				Reason:   SkipReasonUnparseableDate,
				Value:    rawDate.String(),
			})
			continue
		}

		// An absent amount is a genuine zero; an unparseable one is dropped.
		amount := decimal.Zero
		if rawAmount, found := Resolve(row, AmountKeys...); found {
			parsed, ok := NormalizeAmount(rawAmount)
			if !ok {
				result.Skipped = append(result.Skipped, SkippedRow{
					RowIndex: i,
					Reason:   SkipReasonUnparseableAmount,
					Value:    rawAmount.String(),
				})
				continue
			}
			amount = parsed
		}

		dataType := defaultDataType
		if s, ok := ResolveString(row, DataTypeKeys...); ok {
			if parsed, valid := entity.ParseDataType(s); valid {
				dataType = parsed
			}
		}

		result.Records = append(result.Records, &entity.CanonicalRecord{
			ID:           recordID(row, in.Metadata),
			TenantID:     in.Metadata.TenantID,
			ImportID:     in.Metadata.ImportID,
			Name:         name,
			Date:         date,
			Amount:       amount,
			Source:       in.Metadata.Source,
			DataType:     dataType,
			CategoryID:   categoryID,
			CategoryPath: path,
			CreatedBy:    in.Metadata.CreatedBy,
			CreatedAt:    in.Now,
		})
	}

	return result
}

// sectionFor picks level 1 of the category path. Column mode uses the
// section classifier on the configured column; static mode uses the matched
// taxonomy category's section hint, then the configured section.
func sectionFor(row entity.RawRecord, cfg valueobject.TransformConfig, matched *entity.TaxonomyCategory) string {
	if cfg.UsesSectionColumn() {
		value, _ := ResolveString(row, cfg.SectionColumn)
		return ClassifySection(value, cfg.Section)
	}
	if matched != nil && matched.Section != "" {
		return matched.Section
	}
	return cfg.Section
}

func recordID(row entity.RawRecord, meta entity.ImportMetadata) uuid.UUID {
	naturalID, ok := ResolveString(row, NaturalIDKeys...)
	if !ok || naturalID == "" {
		return uuid.New()
	}
	key := meta.TenantID.String() + "|" + string(meta.Source) + "|" + naturalID
	return uuid.NewSHA1(recordNamespace, []byte(key))
}

func resolveOrNull(row entity.RawRecord, keys []string) entity.RawValue {
	v, ok := Resolve(row, keys...)
	if !ok {
		return entity.NullValue()
	}
	return v
}
