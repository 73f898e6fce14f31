package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
	"billscan/internal/export"
	"billscan/internal/record"
)

func TestWriteXLSX(t *testing.T) {
	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	recs := []*domain.BillRecord{
		record.BuildWithID(uuidFor(1), domain.FieldMap{"name": "Ravi", "goal_units": "12 kL"}, domain.BillCategoryWater, ts),
		record.BuildWithID(uuidFor(2), domain.FieldMap{"name": "Asha"}, domain.BillCategoryWater, ts),
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, domain.BillCategoryWater, recs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Water Bills")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	cols := domain.Columns(domain.BillCategoryWater)
	assert.Equal(t, append([]string{"ID", "Created At"}, cols...), rows[0])
	assert.Equal(t, recs[0].ID().String(), rows[1][0])
	assert.Equal(t, "2025-02-03T04:05:06Z", rows[1][1])
	assert.Equal(t, "Ravi", rows[1][2])
	assert.Equal(t, "12 kL", rows[1][len(rows[1])-1])
	assert.Equal(t, "Asha", rows[2][2])
	assert.Equal(t, domain.NotProvided, rows[2][3])
}

func TestWriteXLSX_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, domain.BillCategoryElectricity, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.SheetName(domain.BillCategoryElectricity))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "peak_usage_hours")
}
