// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// RawValueKind identifies which variant a RawValue holds.
type RawValueKind int

const (
	RawValueNull RawValueKind = iota
	RawValueString
	RawValueNumber
)

// RawValue is an untyped scalar read from a source row: null, string, or number.
type RawValue struct {
	kind   RawValueKind
	text   string
	number decimal.Decimal
}

// NullValue returns the null RawValue.
func NullValue() RawValue {
	return RawValue{kind: RawValueNull}
}

// StringValue wraps a string read from a source.
func StringValue(s string) RawValue {
	return RawValue{kind: RawValueString, text: s}
}

// NumberValue wraps a numeric value read from a source.
func NumberValue(d decimal.Decimal) RawValue {
	return RawValue{kind: RawValueNumber, number: d}
}

// RawValueFromAny converts a JSON-decoded value into a RawValue.
// Booleans and nested values are kept as their string form.
func RawValueFromAny(v interface{}) RawValue {
	switch val := v.(type) {
	case nil:
		return NullValue()
	case string:
		return StringValue(val)
	case float64:
		return NumberValue(decimal.NewFromFloat(val))
	case float32:
		return NumberValue(decimal.NewFromFloat32(val))
	case int:
		return NumberValue(decimal.NewFromInt(int64(val)))
	case int64:
		return NumberValue(decimal.NewFromInt(val))
	case decimal.Decimal:
		return NumberValue(val)
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return StringValue(val.String())
		}
		return NumberValue(d)
	case interface{ String() string }:
		return StringValue(val.String())
	case bool:
		if val {
			return StringValue("true")
		}
		return StringValue("false")
	default:
		return NullValue()
	}
}

// Kind returns the variant held by the value.
func (v RawValue) Kind() RawValueKind {
	return v.kind
}

// IsEmpty reports whether the value counts as absent: null, or a blank string.
func (v RawValue) IsEmpty() bool {
	switch v.kind {
	case RawValueNull:
		return true
	case RawValueString:
		return strings.TrimSpace(v.text) == ""
	default:
		return false
	}
}

// Number returns the numeric payload and whether the value is a number.
func (v RawValue) Number() (decimal.Decimal, bool) {
	return v.number, v.kind == RawValueNumber
}

// String returns the textual form of the value. Null renders as "".
func (v RawValue) String() string {
	switch v.kind {
	case RawValueString:
		return v.text
	case RawValueNumber:
		return v.number.String()
	default:
		return ""
	}
}

// RawField is one key/value cell of a RawRecord.
type RawField struct {
	Key   string
	Value RawValue
}

// RawRecord is an ordered, schema-less row handed over by an ingestion source.
// It is immutable once built.
type RawRecord struct {
	fields []RawField
}

// NewRawRecord builds a RawRecord preserving field order.
func NewRawRecord(fields ...RawField) RawRecord {
	copied := make([]RawField, len(fields))
	copy(copied, fields)
	return RawRecord{fields: copied}
}

// NewRawRecordFromStrings builds a RawRecord from a header row and one data row.
// Missing trailing cells are treated as empty strings.
func NewRawRecordFromStrings(headers, cells []string) RawRecord {
	fields := make([]RawField, 0, len(headers))
	for i, header := range headers {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		fields = append(fields, RawField{Key: header, Value: StringValue(cell)})
	}
	return RawRecord{fields: fields}
}

// NewRawRecordFromMap builds a RawRecord from a decoded JSON object.
// JSON objects carry no key order, so keys are sorted to keep lookups deterministic.
func NewRawRecordFromMap(m map[string]interface{}) RawRecord {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]RawField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, RawField{Key: k, Value: RawValueFromAny(m[k])})
	}
	return RawRecord{fields: fields}
}

// Fields returns a copy of the record's fields in source order.
func (r RawRecord) Fields() []RawField {
	copied := make([]RawField, len(r.fields))
	copy(copied, r.fields)
	return copied
}

// Len returns the number of fields.
func (r RawRecord) Len() int {
	return len(r.fields)
}

// Lookup returns the value stored under exactly key.
func (r RawRecord) Lookup(key string) (RawValue, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return RawValue{}, false
}

// LookupFold returns the first value, in field order, whose key equals key case-insensitively.
func (r RawRecord) LookupFold(key string) (RawValue, bool) {
	for _, f := range r.fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value, true
		}
	}
	return RawValue{}, false
}
