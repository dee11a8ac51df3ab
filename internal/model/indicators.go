package model

// IndicatorSnapshot holds the computed indicator series for one
// (symbol, timeframe) pair. Series are aligned to the candle sequence;
// entries without enough history are NaN.
type IndicatorSnapshot struct {
	Symbol     string
	Timeframe  Timeframe
	Closes     []float64
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	EMAFast    []float64
	SMASlow    []float64
}
