package indicator

import "math"

// LastTwo returns the last two entries of a series. ok is false when the
// series is too short or either entry is still undefined, which callers
// treat as insufficient data for this cycle.
func LastTwo(series []float64) (prev, curr float64, ok bool) {
	if len(series) < 2 {
		return 0, 0, false
	}
	prev = series[len(series)-2]
	curr = series[len(series)-1]
	if math.IsNaN(prev) || math.IsNaN(curr) {
		return 0, 0, false
	}
	return prev, curr, true
}

// Last returns the final entry of a series; ok is false when the series is
// empty or the entry is undefined.
func Last(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	v := series[len(series)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
