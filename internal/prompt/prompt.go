// Package prompt builds the instruction text sent to the completion model.
//
// The checklist labels are the contract with the field extractor: the
// extractor's grammar recognizes exactly the labels requested here.
package prompt

import (
	"fmt"

	"billscan/internal/domain"
)

const header = `
    Extract key details from the following %s bill:
    %s
    Provide the following details in a clear, structured format (e.g., 'Field: Value'). If a field is not found, explicitly state 'Not found':
    `

const electricityChecklist = `
        - Name:
        - Address:
        - Bill Amount:
        - Due Date:
        - Account Number:
        - Billing Period:
        - Additional Instructions:
        - Cost Fluctuations:
        - Monthly Comparison:
        - Consumption History: Extract historical electricity usage data in the following exact format:  'Month/Period: X units'.  For example: 'Jan 2025: 500 units, Feb 2025: 450 units'.  Ensure the data is returned in a single line, with each month/period separated by a comma and space. If no data is available, return 'No data available'.
        - Average Daily Consumption:
        - Energy Efficiency Tips:
        - Additional Parameters:
        - Current units consumed:
        - Goal units: (Generate a practical and plausible number of units consumed(kWh) along with the concise reason for the current billing period.)
        - Subsidies Unit:
        - Challenges:
        `

const waterChecklist = `
        - Name:
        - Water Usage:
        - Bill Cycle:
        - Current Consumption Units:
        - Current Consumption Days:
        - Bill History: (Extract historical water usage data, e.g., 'Month/Period: X units'. If not found, say 'Not found')
        - Billing Period:
        - Bill Date:
        - Account Number:
        - Due Date:
        - Bill Amount:
        - Additional Instructions:
        - Cost Fluctuations:
        - Monthly Comparison:
        - Average Daily Consumption:
        - Water Efficiency Tips:
        - Subsidies Unit:
        - Goal units: (Generate a practical and plausible number of units consumed(kL) for the current billing period.)
        - Challenges:
        `

// Build returns the full prompt for documentText. The document text is
// embedded verbatim.
func Build(documentText string, category domain.BillCategory) string {
	p := fmt.Sprintf(header, category, documentText)
	switch category {
	case domain.BillCategoryElectricity:
		p += electricityChecklist
	case domain.BillCategoryWater:
		p += waterChecklist
	}
	return p
}

// Labels returns the checklist labels requested for category, in order.
func Labels(category domain.BillCategory) []string {
	fields := domain.Fields(category)
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
	}
	return labels
}
