package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupKey(t *testing.T) {
	withPlace := &BusinessRecord{PlaceID: "place-123", Name: "A", Address: "1 Main St"}
	assert.Equal(t, "place-123", withPlace.DedupKey())

	noPlace := &BusinessRecord{Name: "A", Address: "1 Main St"}
	assert.Equal(t, "A|1 Main St", noPlace.DedupKey())

	other := &BusinessRecord{Name: "A", Address: "2 Main St"}
	assert.NotEqual(t, noPlace.DedupKey(), other.DedupKey())
}

func TestBusinessRecord_JSONOmitsUnsetAttributes(t *testing.T) {
	rec := BusinessRecord{ID: "b1", Name: "Summit HVAC"}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.NotContains(t, m, "monthly_revenue")
	assert.NotContains(t, m, "years_in_business")
	assert.NotContains(t, m, "employee_count")
	assert.NotContains(t, m, "qualification")

	rev := 20000.0
	rec.MonthlyRevenue = &rev
	raw, err = json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "monthly_revenue")
}
