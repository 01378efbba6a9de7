package report

import (
	"fmt"
	"time"
)

// periodLabel names the reporting period.
// Formats:
// - Single month: "Jan 2024"
// - Single quarter: "Q1 2024"
// - Full year: "FY 2024"
// - Otherwise: "Jan 2024 - Mar 2025"
func periodLabel(start, end time.Time) string {
	if start.Year() == end.Year() {
		switch {
		case start.Month() == end.Month():
			return monthLabel(start)
		case start.Month() == time.January && end.Month() == time.December:
			return fmt.Sprintf("FY %d", start.Year())
		case quarter(start) == quarter(end):
			return fmt.Sprintf("Q%d %d", quarter(start), start.Year())
		}
	}
	return fmt.Sprintf("%s - %s", monthLabel(start), monthLabel(end))
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
