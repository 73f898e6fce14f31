package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/export"
)

func TestCSVWriter(t *testing.T) {
	created := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	rec := domain.NewBillRecord(uuidFor(1), domain.BillCategoryWater, map[string]string{
		"name":        "Jane, Doe",
		"bill_amount": "640",
	}, created)

	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf, domain.BillCategoryWater)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]*domain.BillRecord{rec}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cols := domain.Columns(domain.BillCategoryWater)
	assert.Equal(t, append([]string{"ID", "Created At"}, cols...), rows[0])
	assert.Equal(t, uuidFor(1).String(), rows[1][0])
	assert.Equal(t, "2025-03-04T05:06:07Z", rows[1][1])
	assert.Equal(t, "Jane, Doe", rows[1][2])
	assert.Len(t, rows[1], len(cols)+2)
}

func TestCSVWriter_RejectsOtherCategory(t *testing.T) {
	rec := domain.NewBillRecord(uuidFor(2), domain.BillCategoryElectricity, nil, time.Now())

	w := export.NewCSVWriter(&bytes.Buffer{}, domain.BillCategoryWater)
	assert.Error(t, w.WriteRecords([]*domain.BillRecord{rec}))
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "electricity_bills_2025-01-31.csv", export.BuildFilename(domain.BillCategoryElectricity, "csv", now))
}
