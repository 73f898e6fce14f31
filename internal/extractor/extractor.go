// Package extractor turns a free-text model completion into a FieldMap.
package extractor

import (
	"regexp"
	"strings"

	"billscan/internal/domain"
	"billscan/internal/textnorm"
)

const consumptionHistoryKey = "consumption_history"

// consumptionRange matches "<date>-<date>: <n> units" where the two dates
// are joined by "-" or "to", e.g. "01-01-2025 to 31-01-2025: 500 units".
var consumptionRange = regexp.MustCompile(
	`(?i)\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\s*(?:-|to)\s*\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\s*:\s*\d+\s*units\b`)

// Extract parses completion into a FieldMap for category. source is the
// document text the completion was produced from; it is only consulted to
// recover electricity consumption history the model did not report.
// Every schema key of category is present in the result. Extract never fails.
func Extract(completion, source string, category domain.BillCategory) domain.FieldMap {
	fields := domain.NewFieldMap(category)

	for _, p := range Tokenize(completion) {
		key, ok := domain.ResolveKey(category, domain.CanonicalKey(p.Label))
		if !ok {
			continue
		}
		v := textnorm.Normalize(p.Value)
		if v == "" || strings.EqualFold(v, domain.NotFound) {
			v = domain.NotFound
		}
		fields[key] = v
	}

	if category == domain.BillCategoryElectricity && fields[consumptionHistoryKey] == domain.NotFound {
		if history := ConsumptionHistory(source); history != "" {
			fields[consumptionHistoryKey] = history
		}
	}
	return fields
}

// ConsumptionHistory returns every date-range usage entry in text joined by
// "; ", or "" when there is none.
func ConsumptionHistory(text string) string {
	return strings.Join(consumptionRange.FindAllString(text, -1), "; ")
}
