package transform

import (
	"strings"

	"github.com/finance-tracker/pnl/internal/domain/entity"
)

// Match returns the first taxonomy category with a keyword contained in the description.
// Taxonomy order defines priority.
func Match(description string, taxonomy []*entity.TaxonomyCategory) (*entity.TaxonomyCategory, bool) {
	desc := strings.ToLower(description)
	for _, category := range taxonomy {
		if category == nil {
			continue
		}
		for _, keyword := range category.Keywords {
			kw := strings.ToLower(strings.TrimSpace(keyword))
			if kw == "" {
				continue
			}
			if strings.Contains(desc, kw) {
				return category, true
			}
		}
	}
	return nil, false
}

// Categorize returns the id of the first matching taxonomy category,
// or entity.UncategorizedID when nothing matches.
func Categorize(description string, taxonomy []*entity.TaxonomyCategory) string {
	category, ok := Match(description, taxonomy)
	if !ok {
		return entity.UncategorizedID
	}
	return category.ID.String()
}

var (
	revenueKeywords = []string{"revenue", "income"}
	expenseKeywords = []string{"expense", "cost"}
)

// ClassifySection maps a raw section column value to Revenue or Expenses.
// Values matching neither keyword set fall back to the static section.
func ClassifySection(value, fallback string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return fallback
	}
	for _, kw := range revenueKeywords {
		if strings.Contains(v, kw) {
			return entity.SectionRevenue
		}
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(v, kw) {
			return entity.SectionExpenses
		}
	}
	return fallback
}
