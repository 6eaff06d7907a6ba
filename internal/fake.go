package internal

import (
	"math"
	"math/rand"
)

// Country codes and names used to label fake records.
var fakeCountries = [][2]string{
	{"BE", "Belgium"}, {"BG", "Bulgaria"}, {"CZ", "Czechia"}, {"DK", "Denmark"},
	{"DE", "Germany"}, {"EE", "Estonia"}, {"IE", "Ireland"}, {"EL", "Greece"},
	{"ES", "Spain"}, {"FR", "France"}, {"HR", "Croatia"}, {"IT", "Italy"},
	{"CY", "Cyprus"}, {"LV", "Latvia"}, {"LT", "Lithuania"}, {"LU", "Luxembourg"},
	{"HU", "Hungary"}, {"MT", "Malta"}, {"NL", "Netherlands"}, {"AT", "Austria"},
	{"PL", "Poland"}, {"PT", "Portugal"}, {"RO", "Romania"}, {"SI", "Slovenia"},
	{"SK", "Slovakia"}, {"FI", "Finland"}, {"SE", "Sweden"},
}

// NewFakeRecords returns up to n records with random values between 0 and 100,
// keyed by the given id, name and value fields, for previewing a chart.
func NewFakeRecords(n int, fields DataOptions) []Record {
	n = max(0, min(n, len(fakeCountries)))
	values := getBiasedSmoothRandomValues(n, 0, 100)

	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			fields.ID:    fakeCountries[i][0],
			fields.Name:  fakeCountries[i][1],
			fields.Value: values[i],
		}
	}
	return records
}

// Returns n random integers between min and max, biased towards min, with smooth transitions.
func getBiasedSmoothRandomValues(n, min, max int) []int {
	values := make([]int, n)

	for i := range values {
		// Prefer lower values.
		bias := rand.Float64()
		target := min + int(math.Pow(bias, 4)*float64(max-min))

		next := target
		if i > 0 {
			// Smooth the change from one value to the next.
			step := rand.Intn(10) - 5
			next = values[i-1] + step
			next = (next*3 + target) / 4
		}

		if next < min {
			next = min
		}
		if next > max {
			next = max
		}
		values[i] = next
	}

	return values
}
