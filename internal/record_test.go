package internal

import (
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`[
		{"id": "DE", "name": "Germany", "value": 15, "population": 84.4},
		{"id": "BE", "name": "Belgium", "value": 35.25}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Germany", records[0]["name"])

	data, err := buildData(records, defaultOptions().Data, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 15.0, data[0].Value)
	assert.Equal(t, 35.25, data[1].Value)
	assert.Equal(t, "84.4", data[0].Record["population"].(json.Number).String(), "numbers keep their text")
}

func TestReadRecordsInvalid(t *testing.T) {
	for _, input := range []string{
		`{"id": "DE"}`,
		`[1, 2]`,
		`[{"id": `,
	} {
		_, err := ReadRecords(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestBuildDataJoinsErrors(t *testing.T) {
	_, err := buildData([]Record{
		{"value": 1},
		{"id": "BE", "value": "x"},
		{"id": "FR", "value": 3},
	}, defaultOptions().Data, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "record 0")
	assert.Contains(t, err.Error(), "record 1")
	assert.NotContains(t, err.Error(), "record 2")
}

func TestToFloat(t *testing.T) {
	for _, test := range []struct {
		value any
		want  float64
	}{
		{15, 15},
		{int64(-2), -2},
		{uint8(7), 7},
		{float32(0.5), 0.5},
		{1.25, 1.25},
		{json.Number("42"), 42},
		{" 3.5 ", 3.5},
	} {
		got, err := toFloat(test.value)
		require.NoError(t, err, "%v", test.value)
		assert.Equal(t, test.want, got, "%v", test.value)
	}

	for _, value := range []any{nil, true, "ten", []int{1}} {
		_, err := toFloat(value)
		assert.Error(t, err, "%v", value)
	}
}
