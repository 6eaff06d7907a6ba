package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFakeRecords(t *testing.T) {
	fields := DataOptions{ID: "code", Name: "label", Value: "amount"}
	records := NewFakeRecords(10, fields)
	require.Len(t, records, 10)

	data, err := buildData(records, fields, discardLogger())
	require.NoError(t, err, "fake records resolve without errors")
	for _, d := range data {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.GreaterOrEqual(t, d.Value, 0.0)
		assert.LessOrEqual(t, d.Value, 100.0)
	}

	assert.Len(t, NewFakeRecords(1000, fields), len(fakeCountries), "ids stay unique")
	assert.Empty(t, NewFakeRecords(0, fields))
}

func TestGetBiasedSmoothRandomValues(t *testing.T) {
	values := getBiasedSmoothRandomValues(50, 10, 20)
	require.Len(t, values, 50)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 10)
		assert.LessOrEqual(t, v, 20)
	}
}
