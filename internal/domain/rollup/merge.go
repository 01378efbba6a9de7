package rollup

import "github.com/finance-tracker/pnl/internal/domain/entity"

// MergeSources concatenates the canonical records of every source.
// No de-duplication happens: sources are treated as disjoint ledgers, so the
// same transaction reported by two integrations is counted twice.
func MergeSources(perSource []entity.SourceRecords) []*entity.CanonicalRecord {
	total := 0
	for _, s := range perSource {
		total += len(s.Records)
	}

	merged := make([]*entity.CanonicalRecord, 0, total)
	for _, s := range perSource {
		merged = append(merged, s.Records...)
	}
	return merged
}
