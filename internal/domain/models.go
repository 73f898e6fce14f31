package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Absence markers. FieldMap values use NotFound; persisted columns use NotProvided.
const (
	NotFound    = "Not found"
	NotProvided = "Not provided"
)

// IsAbsent reports whether v is one of the absence markers.
func IsAbsent(v string) bool {
	return strings.EqualFold(v, NotFound) || strings.EqualFold(v, NotProvided)
}

// FieldSpec pairs a canonical field key with the label requested from the model.
type FieldSpec struct {
	Key   string
	Label string
}

var electricityFields = []FieldSpec{
	{Key: "name", Label: "Name"},
	{Key: "address", Label: "Address"},
	{Key: "bill_amount", Label: "Bill Amount"},
	{Key: "due_date", Label: "Due Date"},
	{Key: "account_number", Label: "Account Number"},
	{Key: "billing_period", Label: "Billing Period"},
	{Key: "additional_instructions", Label: "Additional Instructions"},
	{Key: "cost_fluctuations", Label: "Cost Fluctuations"},
	{Key: "monthly_comparison", Label: "Monthly Comparison"},
	{Key: "consumption_history", Label: "Consumption History"},
	{Key: "avg_daily_consumption", Label: "Average Daily Consumption"},
	{Key: "energy_efficiency_tips", Label: "Energy Efficiency Tips"},
	{Key: "additional_parameters", Label: "Additional Parameters"},
	{Key: "current_units_consumed", Label: "Current units consumed"},
	{Key: "goal_units", Label: "Goal units"},
	{Key: "subsidies_unit", Label: "Subsidies Unit"},
	{Key: "challenges", Label: "Challenges"},
}

var waterFields = []FieldSpec{
	{Key: "name", Label: "Name"},
	{Key: "water_usage", Label: "Water Usage"},
	{Key: "bill_cycle", Label: "Bill Cycle"},
	{Key: "current_consumption_units", Label: "Current Consumption Units"},
	{Key: "current_consumption_days", Label: "Current Consumption Days"},
	{Key: "bill_history", Label: "Bill History"},
	{Key: "billing_period", Label: "Billing Period"},
	{Key: "bill_date", Label: "Bill Date"},
	{Key: "account_number", Label: "Account Number"},
	{Key: "due_date", Label: "Due Date"},
	{Key: "bill_amount", Label: "Bill Amount"},
	{Key: "additional_instructions", Label: "Additional Instructions"},
	{Key: "cost_fluctuations", Label: "Cost Fluctuations"},
	{Key: "monthly_comparison", Label: "Monthly Comparison"},
	{Key: "avg_daily_consumption", Label: "Average Daily Consumption"},
	{Key: "water_efficiency_tips", Label: "Water Efficiency Tips"},
	{Key: "subsidies_unit", Label: "Subsidies Unit"},
	{Key: "goal_units", Label: "Goal units"},
	{Key: "challenges", Label: "Challenges"},
}

// PeakUsageHoursColumn exists in the electricity table but no prompt field fills it.
const PeakUsageHoursColumn = "peak_usage_hours"

var electricityColumns = []string{
	"name", "address", "bill_amount", "due_date", "account_number", "billing_period",
	"additional_instructions", "cost_fluctuations", PeakUsageHoursColumn, "monthly_comparison",
	"avg_daily_consumption", "energy_efficiency_tips", "additional_parameters",
	"current_units_consumed", "subsidies_unit", "consumption_history", "goal_units",
	"challenges",
}

var waterColumns = []string{
	"name", "water_usage", "bill_cycle", "current_consumption_units", "current_consumption_days",
	"billing_period", "bill_date", "account_number", "due_date", "bill_amount",
	"additional_instructions", "cost_fluctuations", "monthly_comparison", "avg_daily_consumption",
	"water_efficiency_tips", "subsidies_unit", "challenges", "bill_history", "goal_units",
}

// Fields returns the extraction schema of c in prompt order.
func Fields(c BillCategory) []FieldSpec {
	var src []FieldSpec
	switch c {
	case BillCategoryElectricity:
		src = electricityFields
	case BillCategoryWater:
		src = waterFields
	}
	out := make([]FieldSpec, len(src))
	copy(out, src)
	return out
}

// SchemaKeys returns the canonical extraction keys of c in prompt order.
func SchemaKeys(c BillCategory) []string {
	fields := Fields(c)
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// Columns returns the persisted column list of c in insert order.
func Columns(c BillCategory) []string {
	var src []string
	switch c {
	case BillCategoryElectricity:
		src = electricityColumns
	case BillCategoryWater:
		src = waterColumns
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CanonicalKey lowercases a label and joins its words with underscores.
func CanonicalKey(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// ResolveKey maps a canonicalized label onto a schema key of c. Both the key
// itself and the canonical form of the requested display label resolve.
func ResolveKey(c BillCategory, canonical string) (string, bool) {
	for _, f := range Fields(c) {
		if canonical == f.Key || canonical == CanonicalKey(f.Label) {
			return f.Key, true
		}
	}
	return "", false
}

// FieldMap maps canonical field keys to extracted values or NotFound.
type FieldMap map[string]string

// NewFieldMap returns a FieldMap holding NotFound for every schema key of c.
func NewFieldMap(c BillCategory) FieldMap {
	m := make(FieldMap, len(electricityFields))
	for _, k := range SchemaKeys(c) {
		m[k] = NotFound
	}
	return m
}

// BillRecord is a finished, immutable bill row ready for persistence.
type BillRecord struct {
	id        uuid.UUID
	category  BillCategory
	values    map[string]string
	createdAt time.Time
}

// NewBillRecord copies values for every column of category into a new record.
// Columns missing from values hold NotProvided.
func NewBillRecord(id uuid.UUID, category BillCategory, values map[string]string, createdAt time.Time) *BillRecord {
	cols := Columns(category)
	own := make(map[string]string, len(cols))
	for _, col := range cols {
		v, ok := values[col]
		if !ok {
			v = NotProvided
		}
		own[col] = v
	}
	return &BillRecord{id: id, category: category, values: own, createdAt: createdAt.UTC()}
}

func (r *BillRecord) ID() uuid.UUID          { return r.id }
func (r *BillRecord) Category() BillCategory { return r.category }
func (r *BillRecord) CreatedAt() time.Time   { return r.createdAt }

// Value returns the stored value of column col, or "" if col is not a column.
func (r *BillRecord) Value(col string) string {
	return r.values[col]
}

// Values returns the column values of the record in insert order.
func (r *BillRecord) Values() []string {
	cols := Columns(r.category)
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = r.values[col]
	}
	return out
}

// Fields returns a copy of the column map.
func (r *BillRecord) Fields() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r *BillRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.values)+3)
	for k, v := range r.values {
		out[k] = v
	}
	out["id"] = r.id.String()
	out["bill_type"] = string(r.category)
	out["created_at"] = r.createdAt.Format(time.RFC3339)
	return json.Marshal(out)
}

// BillSummary is the record appended to the on-disk JSON export.
type BillSummary struct {
	BillType  BillCategory `json:"bill_type"`
	Timestamp time.Time    `json:"timestamp"`
	Fields    FieldMap     `json:"-"`
}

func (s BillSummary) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(s.Fields)+2)
	for k, v := range s.Fields {
		out[k] = v
	}
	out["bill_type"] = string(s.BillType)
	out["timestamp"] = s.Timestamp.Format(time.RFC3339Nano)
	return json.Marshal(out)
}
