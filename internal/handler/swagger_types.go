package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Driver string `json:"driver,omitempty" example:"sqlite"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// ElectricityBill documents a stored electricity bill record.
type ElectricityBill struct {
	ID                     string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BillType               string `json:"bill_type" example:"electricity"`
	CreatedAt              string `json:"created_at" example:"2025-02-01T10:30:00Z"`
	Name                   string `json:"name" example:"Jane Doe"`
	Address                string `json:"address" example:"12 Park Street, Pune"`
	BillAmount             string `json:"bill_amount" example:"1,240.00"`
	DueDate                string `json:"due_date" example:"15-02-2025"`
	AccountNumber          string `json:"account_number" example:"170012345678"`
	BillingPeriod          string `json:"billing_period" example:"01-01-2025 to 31-01-2025"`
	AdditionalInstructions string `json:"additional_instructions" example:"Not provided"`
	CostFluctuations       string `json:"cost_fluctuations" example:"Up 8% from last month"`
	PeakUsageHours         string `json:"peak_usage_hours" example:"Not provided"`
	MonthlyComparison      string `json:"monthly_comparison" example:"Dec 2024: 460 units"`
	AvgDailyConsumption    string `json:"avg_daily_consumption" example:"16 units"`
	EnergyEfficiencyTips   string `json:"energy_efficiency_tips" example:"Switch to LED lighting"`
	AdditionalParameters   string `json:"additional_parameters" example:"Sanctioned load 3 kW"`
	CurrentUnitsConsumed   string `json:"current_units_consumed" example:"500"`
	SubsidiesUnit          string `json:"subsidies_unit" example:"Not provided"`
	ConsumptionHistory     string `json:"consumption_history" example:"Jan 2025: 500 units, Feb 2025: 450 units"`
	GoalUnits              string `json:"goal_units" example:"450 units; reduce AC usage in the evening"`
	Challenges             string `json:"challenges" example:"Not provided"`
}

// WaterBill documents a stored water bill record.
type WaterBill struct {
	ID                      string `json:"id" example:"660e8400-e29b-41d4-a716-446655440001"`
	BillType                string `json:"bill_type" example:"water"`
	CreatedAt               string `json:"created_at" example:"2025-02-01T10:30:00Z"`
	Name                    string `json:"name" example:"Jane Doe"`
	WaterUsage              string `json:"water_usage" example:"12 kL"`
	BillCycle               string `json:"bill_cycle" example:"Bi-monthly"`
	CurrentConsumptionUnits string `json:"current_consumption_units" example:"12"`
	CurrentConsumptionDays  string `json:"current_consumption_days" example:"60"`
	BillingPeriod           string `json:"billing_period" example:"Dec 2024 - Jan 2025"`
	BillDate                string `json:"bill_date" example:"02-02-2025"`
	AccountNumber           string `json:"account_number" example:"W-0042-7781"`
	DueDate                 string `json:"due_date" example:"20-02-2025"`
	BillAmount              string `json:"bill_amount" example:"640.00"`
	AdditionalInstructions  string `json:"additional_instructions" example:"Not provided"`
	CostFluctuations        string `json:"cost_fluctuations" example:"Not provided"`
	MonthlyComparison       string `json:"monthly_comparison" example:"Not provided"`
	AvgDailyConsumption     string `json:"avg_daily_consumption" example:"200 L"`
	WaterEfficiencyTips     string `json:"water_efficiency_tips" example:"Fix leaking taps"`
	SubsidiesUnit           string `json:"subsidies_unit" example:"Not provided"`
	Challenges              string `json:"challenges" example:"Not provided"`
	BillHistory             string `json:"bill_history" example:"Oct-Nov 2024: 11 kL"`
	GoalUnits               string `json:"goal_units" example:"10 kL"`
}

// BillWithDocumentURL represents a bill with a link to its archived PDF.
type BillWithDocumentURL struct {
	Record      ElectricityBill `json:"record"`
	DocumentURL string          `json:"document_url,omitempty" example:"https://s3.amazonaws.com/billscan-archive/bills/electricity/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
