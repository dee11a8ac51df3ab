package indicator

import (
	"math"
	"testing"
)

var knownCloses = []float64{
	100, 101, 102, 103, 105, 107, 106, 108, 110, 111, 112, 115, 117, 119, 118,
	120, 121, 123, 125, 124, 126, 127, 129, 130, 132, 133, 134, 135, 136, 138,
	139, 141, 140, 142, 144, 143, 145, 147, 149, 148, 150, 151, 149, 148, 150,
	152, 151, 153, 154, 156, 155, 157, 158, 160, 161, 159, 158, 157, 159, 160,
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestEMA_SeedAndRecurrence(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	result := EMA(data, 3)
	if len(result) != len(data) {
		t.Fatalf("expected %d entries, got %d", len(data), len(result))
	}
	if !math.IsNaN(result[0]) || !math.IsNaN(result[1]) {
		t.Error("entries before the first full window must be NaN")
	}
	want := []float64{2, 3, 4, 5}
	for i, w := range want {
		if !almostEqual(result[i+2], w, 1e-9) {
			t.Errorf("ema[%d]: expected %.1f, got %.6f", i+2, w, result[i+2])
		}
	}
}

func TestEMA_InsufficientData(t *testing.T) {
	result := EMA([]float64{1, 2}, 5)
	for i, v := range result {
		if !math.IsNaN(v) {
			t.Errorf("ema[%d]: expected NaN for short input, got %.4f", i, v)
		}
	}
}

func TestSMA(t *testing.T) {
	result := SMA([]float64{1, 2, 3, 4}, 2)
	if !math.IsNaN(result[0]) {
		t.Error("sma[0] must be NaN")
	}
	want := []float64{1.5, 2.5, 3.5}
	for i, w := range want {
		if !almostEqual(result[i+1], w, 1e-9) {
			t.Errorf("sma[%d]: expected %.1f, got %.6f", i+1, w, result[i+1])
		}
	}
}

func TestRSI_KnownSeries(t *testing.T) {
	rsi := RSI(knownCloses, 14)
	if len(rsi) != len(knownCloses) {
		t.Fatalf("expected %d entries, got %d", len(knownCloses), len(rsi))
	}
	for i := 0; i < 14; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Errorf("rsi[%d]: expected NaN before period+1 candles", i)
		}
	}
	if got := rsi[len(rsi)-1]; !almostEqual(got, 73.084185, 1e-6) {
		t.Errorf("expected final RSI 73.084185, got %.6f", got)
	}
}

func TestRSI_AllGainsSaturates(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	rsi := RSI(prices, 14)
	if got := rsi[len(rsi)-1]; got != 100.0 {
		t.Errorf("expected RSI 100 for monotonic gains, got %.4f", got)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	rsi := RSI([]float64{1, 2, 3}, 14)
	for i, v := range rsi {
		if !math.IsNaN(v) {
			t.Errorf("rsi[%d]: expected NaN, got %.4f", i, v)
		}
	}
}

func TestMACD_KnownSeries(t *testing.T) {
	macd, signal := MACD(knownCloses, 12, 26, 9)
	if len(macd) != len(knownCloses) || len(signal) != len(knownCloses) {
		t.Fatal("macd and signal must align with the input")
	}
	last := len(knownCloses) - 1
	if !almostEqual(macd[last], 5.582947, 1e-6) {
		t.Errorf("expected final MACD 5.582947, got %.6f", macd[last])
	}
	if !almostEqual(signal[last], 6.307087, 1e-6) {
		t.Errorf("expected final signal 6.307087, got %.6f", signal[last])
	}
	// Signal needs slow+signal history before it stabilizes.
	if !math.IsNaN(signal[30]) {
		t.Errorf("signal[30] should still be NaN, got %.6f", signal[30])
	}
}

func TestLastTwo(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		ok     bool
	}{
		{"defined tail", []float64{math.NaN(), 1, 2}, true},
		{"nan prev", []float64{math.NaN(), 2}, false},
		{"too short", []float64{1}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		prev, curr, ok := LastTwo(tt.series)
		if ok != tt.ok {
			t.Errorf("%s: expected ok=%v, got %v", tt.name, tt.ok, ok)
		}
		if tt.ok && (prev != 1 || curr != 2) {
			t.Errorf("%s: expected (1,2), got (%.1f,%.1f)", tt.name, prev, curr)
		}
	}
}

func TestLast(t *testing.T) {
	if _, ok := Last([]float64{math.NaN()}); ok {
		t.Error("NaN tail must report not ok")
	}
	if v, ok := Last([]float64{1, 5}); !ok || v != 5 {
		t.Errorf("expected (5,true), got (%.1f,%v)", v, ok)
	}
}
