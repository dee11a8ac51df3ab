package indicator

import "math"

// MACD computes the MACD line (EMA(fast) − EMA(slow)) and its signal line
// (EMA(signal) of the MACD line). Both series are aligned to the input;
// entries without enough history are NaN.
func MACD(prices []float64, fast, slow, signal int) (macd, signalLine []float64) {
	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)

	macd = nanSeries(len(prices))
	for i := range prices {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			macd[i] = emaFast[i] - emaSlow[i]
		}
	}
	signalLine = EMA(macd, signal)
	return macd, signalLine
}
