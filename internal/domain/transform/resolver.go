// Package transform turns heterogeneous raw rows into canonical records.
// Everything here is pure: no I/O, no package-level mutable state.
package transform

import (
	"strings"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// Candidate keys for the canonical fields, in priority order.
var (
	NameKeys      = []string{"Description", "name"}
	DateKeys      = []string{"Date", "date"}
	AmountKeys    = []string{"Amount", "amount"}
	DataTypeKeys  = []string{"DataType", "data_type", "Scenario"}
	NaturalIDKeys = []string{"id", "transaction_id", "external_id"}
)

// Resolve returns the first present, non-empty value for the candidate keys.
// Each candidate is tried by exact key first, then by a case-insensitive scan
// of the row. Candidate order wins over row order. Absence is not an error.
func Resolve(row entity.RawRecord, candidateKeys ...string) (entity.RawValue, bool) {
	fields := row.Fields()

	for _, key := range candidateKeys {
		if v, ok := row.Lookup(key); ok && !v.IsEmpty() {
			return v, true
		}
		for _, f := range fields {
			if strings.EqualFold(f.Key, key) && !f.Value.IsEmpty() {
				return f.Value, true
			}
		}
	}
	return entity.RawValue{}, false
}

// ResolveString is Resolve for callers that only need trimmed text.
func ResolveString(row entity.RawRecord, candidateKeys ...string) (string, bool) {
	v, ok := Resolve(row, candidateKeys...)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v.String()), true
}
