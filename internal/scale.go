package internal

import (
	"math"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	domain [2]float64
	rng    [2]float64
}

// NewLinearScale returns a scale over the given domain and range.
func NewLinearScale(d0, d1, r0, r1 float64) *LinearScale {
	return &LinearScale{domain: [2]float64{d0, d1}, rng: [2]float64{r0, r1}}
}

// Domain returns the input extent.
func (s *LinearScale) Domain() (float64, float64) {
	return s.domain[0], s.domain[1]
}

// Range returns the output extent.
func (s *LinearScale) Range() (float64, float64) {
	return s.rng[0], s.rng[1]
}

// SetRange replaces the output extent and keeps the domain.
func (s *LinearScale) SetRange(r0, r1 float64) {
	s.rng = [2]float64{r0, r1}
}

// Apply maps a domain value to the range. A degenerate domain maps everything
// to the middle of the range.
func (s *LinearScale) Apply(v float64) float64 {
	d0, d1 := s.domain[0], s.domain[1]
	r0, r1 := s.rng[0], s.rng[1]
	if d1 == d0 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Invert maps a range value back to the domain.
func (s *LinearScale) Invert(v float64) float64 {
	d0, d1 := s.domain[0], s.domain[1]
	r0, r1 := s.rng[0], s.rng[1]
	if r1 == r0 {
		return (d0 + d1) / 2
	}
	return d0 + (v-r0)/(r1-r0)*(d1-d0)
}

// Nice extends the domain so that it starts and ends on round values, using
// roughly count ticks as the guide for how round.
func (s *LinearScale) Nice(count int) *LinearScale {
	i0, i1 := 0, 1
	start, stop := s.domain[i0], s.domain[i1]
	if stop < start {
		start, stop = stop, start
		i0, i1 = i1, i0
	}
	if start == stop || !finite(start) || !finite(stop) {
		return s
	}

	step := tickIncrement(start, stop, count)
	switch {
	case step > 0:
		start = math.Floor(start/step) * step
		stop = math.Ceil(stop/step) * step
		step = tickIncrement(start, stop, count)
	case step < 0:
		start = math.Ceil(start*step) / step
		stop = math.Floor(stop*step) / step
		step = tickIncrement(start, stop, count)
	}

	switch {
	case step > 0:
		s.domain[i0] = math.Floor(start/step) * step
		s.domain[i1] = math.Ceil(stop/step) * step
	case step < 0:
		s.domain[i0] = math.Ceil(start*step) / step
		s.domain[i1] = math.Floor(stop*step) / step
	}
	return s
}

// Ticks returns roughly count round values within the domain, ascending.
func (s *LinearScale) Ticks(count int) []float64 {
	start, stop := s.domain[0], s.domain[1]
	if stop < start {
		start, stop = stop, start
	}
	return ticks(start, stop, count)
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 || !finite(start) || !finite(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	step := tickIncrement(start, stop, count)
	if step == 0 || !finite(step) {
		return nil
	}

	var out []float64
	if step > 0 {
		first, last := math.Ceil(start/step), math.Floor(stop/step)
		for i := first; i <= last; i++ {
			out = append(out, i*step)
		}
	} else {
		inv := -step
		first, last := math.Ceil(start*inv), math.Floor(stop*inv)
		for i := first; i <= last; i++ {
			out = append(out, i/inv)
		}
	}
	return out
}

// tickIncrement returns the 1, 2 or 5 times a power of ten step that splits
// [start, stop] into about count intervals. Steps below one are returned as
// the negated inverse to keep tick values exact.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || stop <= start {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// extent returns the smallest and largest value. It reports false for an
// empty input.
func extent(data []Datum) (float64, float64, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	lo, hi := data[0].Value, data[0].Value
	for _, d := range data[1:] {
		lo = math.Min(lo, d.Value)
		hi = math.Max(hi, d.Value)
	}
	return lo, hi, true
}
