package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
)

func TestExtract_EmptyCompletionAllSentinel(t *testing.T) {
	for _, c := range domain.AllBillCategories {
		t.Run(string(c), func(t *testing.T) {
			fields := Extract("", "", c)
			require.Len(t, fields, len(domain.SchemaKeys(c)))
			for _, k := range domain.SchemaKeys(c) {
				assert.Equal(t, domain.NotFound, fields[k], k)
			}
		})
	}
}

func TestExtract_WellFormedLines(t *testing.T) {
	completion := `

- NAME: Jane Doe

- bill amount:   Rs.  1,240.00

- Due Date: 15-02-2025
- Account Number: **00123**
`
	fields := Extract(completion, "", domain.BillCategoryElectricity)

	assert.Equal(t, "Jane Doe", fields["name"])
	assert.Equal(t, "Rs. 1,240.00", fields["bill_amount"])
	assert.Equal(t, "15-02-2025", fields["due_date"])
	assert.Equal(t, "00123", fields["account_number"])
	assert.Equal(t, domain.NotFound, fields["address"])
}

func TestExtract_DisplayLabelAlias(t *testing.T) {
	fields := Extract("- Average Daily Consumption: 12 kWh", "", domain.BillCategoryElectricity)
	assert.Equal(t, "12 kWh", fields["avg_daily_consumption"])
	_, leaked := fields["average_daily_consumption"]
	assert.False(t, leaked)

	fields = Extract("- avg daily consumption: 0.4 kL", "", domain.BillCategoryWater)
	assert.Equal(t, "0.4 kL", fields["avg_daily_consumption"])
}

func TestExtract_MultiLineValue(t *testing.T) {
	completion := "- Energy Efficiency Tips: Reduce AC use.\nTurn off unused lights.\n- Challenges: None"
	fields := Extract(completion, "", domain.BillCategoryElectricity)

	assert.Equal(t, "Reduce AC use. Turn off unused lights.", fields["energy_efficiency_tips"])
	assert.Equal(t, "None", fields["challenges"])
}

func TestExtract_NotFoundIsSentinel(t *testing.T) {
	fields := Extract("- Address: NOT FOUND\n- Name:\n- Bill Cycle: not found", "", domain.BillCategoryWater)
	assert.Equal(t, domain.NotFound, fields["name"])
	assert.Equal(t, domain.NotFound, fields["bill_cycle"])
	_, ok := fields["address"]
	assert.False(t, ok)
}

func TestExtract_UnrecognizedLabelsDropped(t *testing.T) {
	completion := "- Name: Jane\n- Meter Serial: XJ-9\n- Water Usage: 12 kL\n- Peak Usage Hours: 6-9 PM"
	for _, c := range domain.AllBillCategories {
		fields := Extract(completion, "", c)
		allowed := map[string]bool{}
		for _, k := range domain.SchemaKeys(c) {
			allowed[k] = true
		}
		for k := range fields {
			assert.True(t, allowed[k], "unexpected key %q for %s", k, c)
		}
		assert.Len(t, fields, len(allowed))
	}
}

func TestExtract_ConsumptionHistoryFallback(t *testing.T) {
	source := "Previous readings 01-01-2025 to 31-01-2025: 500 units as billed"
	fields := Extract("- Consumption History: Not found", source, domain.BillCategoryElectricity)
	assert.Equal(t, "01-01-2025 to 31-01-2025: 500 units", fields["consumption_history"])
}

func TestExtract_ConsumptionHistoryFallbackWhenMissing(t *testing.T) {
	source := "01-12-2024-31-12-2024: 410 units 01-01-2025 to 31-01-2025: 500 units"
	fields := Extract("- Name: Jane", source, domain.BillCategoryElectricity)
	assert.Equal(t, "01-12-2024-31-12-2024: 410 units; 01-01-2025 to 31-01-2025: 500 units", fields["consumption_history"])
}

func TestExtract_ConsumptionHistoryFromModelWins(t *testing.T) {
	source := "01-01-2025 to 31-01-2025: 500 units"
	fields := Extract("- Consumption History: Jan 2025: 500 units", source, domain.BillCategoryElectricity)
	assert.Equal(t, "Jan 2025: 500 units", fields["consumption_history"])
}

func TestExtract_NoFallbackForWater(t *testing.T) {
	source := "01-01-2025 to 31-01-2025: 500 units"
	fields := Extract("", source, domain.BillCategoryWater)
	assert.Equal(t, domain.NotFound, fields["bill_history"])
	_, ok := fields["consumption_history"]
	assert.False(t, ok)
}

func TestConsumptionHistory(t *testing.T) {
	assert.Equal(t, "", ConsumptionHistory("no usage table here"))
	assert.Equal(t, "1/1/25 TO 31/1/25: 90 Units", ConsumptionHistory("x 1/1/25 TO 31/1/25: 90 Units y"))
	assert.Equal(t, "", ConsumptionHistory("01-01-2025 to 31-01-2025: many units"))
}

func TestExtract_LaterDuplicateWins(t *testing.T) {
	fields := Extract("- Name: First\n- Name: Second", "", domain.BillCategoryElectricity)
	assert.Equal(t, "Second", fields["name"])
}

func TestExtract_RealisticCompletion(t *testing.T) {
	completion := strings.Join([]string{
		"Here are the extracted details:",
		"",
		"*   **Name:** RAMESH KUMAR",
		"*   **Address:** 14, MG Road, Pune",
		"*   **Bill Amount:** ₹ 1,870.00",
		"*   **Consumption History:** Not found",
		"*   **Goal units:** 280 kWh. Shifting laundry to off-peak hours",
		"    trims roughly 20 units.",
		"*   **Subsidies Unit:** 100",
	}, "\n")
	fields := Extract(completion, "", domain.BillCategoryElectricity)

	assert.Equal(t, "RAMESH KUMAR", fields["name"])
	assert.Equal(t, "14, MG Road, Pune", fields["address"])
	assert.Equal(t, "₹ 1,870.00", fields["bill_amount"])
	assert.Equal(t, domain.NotFound, fields["consumption_history"])
	assert.Equal(t, "280 kWh. Shifting laundry to off-peak hours trims roughly 20 units.", fields["goal_units"])
	assert.Equal(t, "100", fields["subsidies_unit"])
}

func TestExtract_UnitSuffixedLabelKeepsNeighbourIntact(t *testing.T) {
	completion := "- Subsidies Unit: 100\n- Current units consumed (kWh): 320\n- Challenges: none"
	fields := Extract(completion, "", domain.BillCategoryElectricity)

	assert.Equal(t, "100", fields["subsidies_unit"])
	assert.Equal(t, domain.NotFound, fields["current_units_consumed"])
	assert.Equal(t, "none", fields["challenges"])
}

func TestExtract_NumberedList(t *testing.T) {
	fields := Extract("1. Name: Jane\n2. Bill Amount: Rs. 450", "", domain.BillCategoryWater)
	assert.Equal(t, "Jane", fields["name"])
	assert.Equal(t, "Rs. 450", fields["bill_amount"])
}
