package indicator

import "math"

// EMA computes the exponential moving average series for the given period.
// The first defined value is the SMA seed over the first full window; leading
// entries are NaN. NaN inputs (e.g. the head of a derived series) push the
// seed window forward instead of poisoning the whole series.
func EMA(prices []float64, period int) []float64 {
	result := nanSeries(len(prices))
	if period <= 0 || len(prices) < period {
		return result
	}
	multiplier := 2.0 / float64(period+1)

	start := -1
	var seed float64
	for i := period - 1; i < len(prices); i++ {
		sum := 0.0
		valid := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(prices[j]) {
				valid = false
				break
			}
			sum += prices[j]
		}
		if valid {
			start = i
			seed = sum / float64(period)
			break
		}
	}
	if start == -1 {
		return result
	}
	result[start] = seed

	for i := start + 1; i < len(prices); i++ {
		if math.IsNaN(prices[i]) {
			result[i] = result[i-1]
			continue
		}
		result[i] = (prices[i]-result[i-1])*multiplier + result[i-1]
	}
	return result
}

// SMA computes the simple moving average series for the given period.
// Leading entries without a full window are NaN.
func SMA(prices []float64, period int) []float64 {
	result := nanSeries(len(prices))
	if period <= 0 || len(prices) < period {
		return result
	}
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			result[i] = sum / float64(period)
		}
	}
	return result
}

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
