package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestNice(t *testing.T) {
	for _, test := range []struct {
		description string
		d0, d1      float64
		count       int
		want        [2]float64
	}{
		{"already round", 0, 100, 10, [2]float64{0, 100}},
		{"wide", 30, 400, 10, [2]float64{0, 400}},
		{"narrow", 15, 35, 10, [2]float64{14, 36}},
		{"fractional", 0.12, 0.87, 10, [2]float64{0.1, 0.9}},
		{"negative", -7, 23, 10, [2]float64{-10, 25}},
		{"reversed", 400, 30, 10, [2]float64{400, 0}},
		{"degenerate", 5, 5, 10, [2]float64{5, 5}},
	} {
		t.Run(test.description, func(t *testing.T) {
			s := NewLinearScale(test.d0, test.d1, 0, 1).Nice(test.count)
			lo, hi := s.Domain()
			assert.InDelta(t, test.want[0], lo, 1e-9)
			assert.InDelta(t, test.want[1], hi, 1e-9)
		})
	}
}

func TestLinearScale(t *testing.T) {
	s := NewLinearScale(14, 36, 0, 600)

	assert.InDelta(t, 0, s.Apply(14), 1e-9)
	assert.InDelta(t, 600, s.Apply(36), 1e-9)
	assert.InDelta(t, 300, s.Apply(25), 1e-9)
	assert.InDelta(t, 27.2727, s.Apply(15), 1e-4)
	assert.InDelta(t, 25, s.Invert(300), 1e-9)

	s.SetRange(0, 300)
	d0, d1 := s.Domain()
	assert.Equal(t, [2]float64{14, 36}, [2]float64{d0, d1}, "the domain survives a new range")
	assert.InDelta(t, 150, s.Apply(25), 1e-9)

	prev := s.Apply(14)
	for v := 14.5; v <= 36; v += 0.5 {
		next := s.Apply(v)
		assert.Greater(t, next, prev, "apply must increase with the value")
		prev = next
	}
}

func TestLinearScaleDegenerate(t *testing.T) {
	s := NewLinearScale(5, 5, 0, 600)
	assert.Equal(t, 300.0, s.Apply(5))
	assert.Equal(t, 300.0, s.Apply(42))

	flat := NewLinearScale(0, 10, 20, 20)
	assert.Equal(t, 5.0, flat.Invert(20))
}

func TestTicks(t *testing.T) {
	for _, test := range []struct {
		description string
		d0, d1      float64
		count       int
		want        []float64
	}{
		{"round", 0, 400, 8, []float64{0, 50, 100, 150, 200, 250, 300, 350, 400}},
		{"narrow", 14, 36, 8, []float64{14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36}},
		{"unit", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"reversed", 10, 0, 2, []float64{0, 5, 10}},
		{"single", 3, 3, 8, []float64{3}},
		{"none", 0, 10, 0, nil},
	} {
		t.Run(test.description, func(t *testing.T) {
			got := NewLinearScale(test.d0, test.d1, 0, 1).Ticks(test.count)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 1e-9), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Ticks() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtent(t *testing.T) {
	_, _, ok := extent(nil)
	assert.False(t, ok)

	lo, hi, ok := extent([]Datum{{Value: 3}, {Value: -1}, {Value: 7}})
	assert.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)
}
