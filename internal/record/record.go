// Package record assembles persisted bill records from extracted fields.
package record

import (
	"time"

	"github.com/google/uuid"

	"billscan/internal/domain"
)

// Build maps fields onto the persisted column list of category. Absent
// values, and columns no extraction key fills, are stored as NotProvided.
func Build(fields domain.FieldMap, category domain.BillCategory, ts time.Time) *domain.BillRecord {
	return BuildWithID(uuid.New(), fields, category, ts)
}

// BuildWithID is Build with a caller-chosen record ID.
func BuildWithID(id uuid.UUID, fields domain.FieldMap, category domain.BillCategory, ts time.Time) *domain.BillRecord {
	values := make(map[string]string, len(fields)+1)
	for _, col := range domain.Columns(category) {
		v, ok := fields[col]
		if !ok || domain.IsAbsent(v) {
			v = domain.NotProvided
		}
		values[col] = v
	}
	if category == domain.BillCategoryElectricity {
		values[domain.PeakUsageHoursColumn] = domain.NotProvided
	}
	return domain.NewBillRecord(id, category, values, ts)
}

// Summary is the JSON export form of an extraction.
func Summary(fields domain.FieldMap, category domain.BillCategory, ts time.Time) domain.BillSummary {
	own := make(domain.FieldMap, len(fields))
	for k, v := range fields {
		own[k] = v
	}
	return domain.BillSummary{BillType: category, Timestamp: ts, Fields: own}
}
