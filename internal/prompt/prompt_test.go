package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
)

func TestBuild_Electricity(t *testing.T) {
	doc := "ACME Power Account Number: 123 Amount Due: 450.00"
	p := Build(doc, domain.BillCategoryElectricity)

	assert.Contains(t, p, "Extract key details from the following electricity bill:")
	assert.Contains(t, p, "\n    "+doc+"\n")
	assert.Contains(t, p, "explicitly state 'Not found':")
	assert.Contains(t, p, "'Jan 2025: 500 units, Feb 2025: 450 units'")
	assert.Contains(t, p, "units consumed(kWh)")
	assert.NotContains(t, p, "- Water Usage:")
}

func TestBuild_Water(t *testing.T) {
	p := Build("Jal Board", domain.BillCategoryWater)

	assert.Contains(t, p, "Extract key details from the following water bill:")
	assert.Contains(t, p, "- Bill History: (Extract historical water usage data")
	assert.Contains(t, p, "units consumed(kL)")
	assert.NotContains(t, p, "- Consumption History:")
}

func TestBuild_ChecklistMatchesLabels(t *testing.T) {
	for _, c := range domain.AllBillCategories {
		t.Run(string(c), func(t *testing.T) {
			p := Build("", c)
			var requested []string
			for _, line := range strings.Split(p, "\n") {
				line = strings.TrimSpace(line)
				if !strings.HasPrefix(line, "- ") {
					continue
				}
				label, _, ok := strings.Cut(strings.TrimPrefix(line, "- "), ":")
				require.True(t, ok, line)
				requested = append(requested, label)
			}
			assert.Equal(t, Labels(c), requested)
		})
	}
}

func TestLabels_CountPerCategory(t *testing.T) {
	assert.Len(t, Labels(domain.BillCategoryElectricity), 17)
	assert.Len(t, Labels(domain.BillCategoryWater), 19)
}
