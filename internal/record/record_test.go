package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
)

func TestBuild_Electricity(t *testing.T) {
	fields := domain.NewFieldMap(domain.BillCategoryElectricity)
	fields["name"] = "Jane"
	fields["challenges"] = "Summer peak"
	fields["peak_usage_hours"] = "6-9 PM"
	ts := time.Date(2025, 2, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))

	rec := Build(fields, domain.BillCategoryElectricity, ts)

	assert.NotEqual(t, uuid.Nil, rec.ID())
	assert.Equal(t, domain.BillCategoryElectricity, rec.Category())
	assert.Equal(t, time.UTC, rec.CreatedAt().Location())
	assert.True(t, rec.CreatedAt().Equal(ts))

	assert.Equal(t, "Jane", rec.Value("name"))
	assert.Equal(t, "Summer peak", rec.Value("challenges"))
	assert.Equal(t, domain.NotProvided, rec.Value("peak_usage_hours"))
	assert.Equal(t, domain.NotProvided, rec.Value("address"))

	values := rec.Values()
	require.Len(t, values, len(domain.Columns(domain.BillCategoryElectricity)))
	assert.Equal(t, "Jane", values[0])
	assert.Equal(t, domain.NotProvided, values[8])
}

func TestBuild_WaterColumnOrder(t *testing.T) {
	fields := domain.FieldMap{"name": "Ravi", "goal_units": "12 kL", "bill_history": "Jan: 10 kL"}
	rec := Build(fields, domain.BillCategoryWater, time.Now())

	cols := domain.Columns(domain.BillCategoryWater)
	values := rec.Values()
	require.Len(t, values, 19)
	assert.Equal(t, "bill_history", cols[17])
	assert.Equal(t, "Jan: 10 kL", values[17])
	assert.Equal(t, "12 kL", values[18])
	for i, col := range cols {
		if _, set := fields[col]; !set {
			assert.Equal(t, domain.NotProvided, values[i], col)
		}
	}
}

func TestBuild_RecordIsIsolatedFromInput(t *testing.T) {
	fields := domain.FieldMap{"name": "Jane"}
	rec := Build(fields, domain.BillCategoryElectricity, time.Now())

	fields["name"] = "changed"
	out := rec.Fields()
	out["name"] = "changed too"

	assert.Equal(t, "Jane", rec.Value("name"))
}

func TestBuild_EachCallIsANewRecord(t *testing.T) {
	ts := time.Now()
	var first, second *domain.BillRecord
	first = Build(domain.FieldMap{"name": "Jane"}, domain.BillCategoryWater, ts)
	second = Build(domain.FieldMap{"name": "Jane"}, domain.BillCategoryWater, ts)

	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, first.Values(), second.Values())
}

func TestBuildWithID(t *testing.T) {
	id := uuid.New()
	rec := BuildWithID(id, domain.FieldMap{}, domain.BillCategoryWater, time.Now())
	assert.Equal(t, id, rec.ID())
}

func TestSummary_MarshalJSON(t *testing.T) {
	fields := domain.NewFieldMap(domain.BillCategoryWater)
	fields["name"] = "Ravi"
	ts := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	s := Summary(fields, domain.BillCategoryWater, ts)
	fields["name"] = "mutated"

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "Ravi", got["name"])
	assert.Equal(t, "water", got["bill_type"])
	assert.Equal(t, "2025-03-04T05:06:07Z", got["timestamp"])
	assert.Equal(t, domain.NotFound, got["challenges"])
	assert.Len(t, got, 21)
}
