package transform

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// NameFallback is used when a row has no usable description.
const NameFallback = "N/A"

// dateLayouts are tried in order. Month-first is assumed for slash dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

// NormalizeDate parses raw into a UTC timestamp.
// On failure it returns now and wasFallback=true; callers decide whether a
// fallback date is acceptable. Numbers are Unix epoch milliseconds.
func NormalizeDate(raw entity.RawValue, now time.Time) (date time.Time, wasFallback bool) {
	if n, ok := raw.Number(); ok {
		return time.UnixMilli(n.IntPart()).UTC(), false
	}

	s := strings.TrimSpace(raw.String())
	if s == "" {
		return now, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), false
		}
	}
	return now, true
}

// NormalizeAmount converts raw into a signed decimal.
// Numbers pass through unchanged. Strings keep only digits, '.' and '-'
// before parsing, so "$1,234.56" becomes 1234.56. An unparseable value
// yields zero with ok=false.
func NormalizeAmount(raw entity.RawValue) (amount decimal.Decimal, ok bool) {
	if n, isNumber := raw.Number(); isNumber {
		return n, true
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw.String())

	if cleaned == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeName trims raw and substitutes NameFallback for blank values.
func NormalizeName(raw entity.RawValue) string {
	name := strings.TrimSpace(raw.String())
	if name == "" {
		return NameFallback
	}
	return name
}
