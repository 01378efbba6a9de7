package transform

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

func field(key string, value entity.RawValue) entity.RawField {
	return entity.RawField{Key: key, Value: value}
}

func str(key, value string) entity.RawField {
	return field(key, entity.StringValue(value))
}

func TestResolve(t *testing.T) {
	t.Run("candidate order wins over row order", func(t *testing.T) {
		row := entity.NewRawRecord(
			field("Amount", entity.NumberValue(decimal.NewFromInt(5))),
			field("amount", entity.NumberValue(decimal.NewFromInt(10))),
		)

		v, ok := Resolve(row, "amount", "Amount")
		if !ok {
			t.Fatal("expected a value")
		}
		if v.String() != "10" {
			t.Errorf("expected value of key \"amount\" (10), got %s", v.String())
		}
	})

	t.Run("falls back to case-insensitive match", func(t *testing.T) {
		row := entity.NewRawRecord(str("DESCRIPTION", "Office rent"))

		v, ok := Resolve(row, "Description")
		if !ok || v.String() != "Office rent" {
			t.Errorf("expected \"Office rent\", got %q (found=%v)", v.String(), ok)
		}
	})

	t.Run("empty and null values count as absent", func(t *testing.T) {
		row := entity.NewRawRecord(
			str("Description", ""),
			field("name", entity.NullValue()),
			str("NAME", "Fallback"),
		)

		v, ok := Resolve(row, "Description", "name")
		if !ok || v.String() != "Fallback" {
			t.Errorf("expected \"Fallback\", got %q (found=%v)", v.String(), ok)
		}
	})

	t.Run("skips an empty case-insensitive match for a later non-empty one", func(t *testing.T) {
		row := entity.NewRawRecord(str("date", " "), str("DATE", "2024-03-01"))

		v, ok := Resolve(row, "Date")
		if !ok || v.String() != "2024-03-01" {
			t.Errorf("expected 2024-03-01, got %q (found=%v)", v.String(), ok)
		}
	})

	t.Run("no match returns empty without error", func(t *testing.T) {
		row := entity.NewRawRecord(str("Other", "x"))

		if _, ok := Resolve(row, "Amount", "amount"); ok {
			t.Error("expected no value")
		}
	})

	t.Run("empty row", func(t *testing.T) {
		if _, ok := Resolve(entity.NewRawRecord(), "Amount"); ok {
			t.Error("expected no value")
		}
	})
}
