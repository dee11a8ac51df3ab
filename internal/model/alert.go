package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Indicator identifies which indicator an alert key belongs to.
type Indicator string

const (
	IndicatorRSI       Indicator = "rsi"
	IndicatorMACD      Indicator = "macd"
	IndicatorCrossover Indicator = "ma-crossover"
)

// AlertKey identifies one piece of persistent classification state.
type AlertKey struct {
	Symbol    string
	Timeframe Timeframe
	Indicator Indicator
}

// Classification is the last emitted alert label for an AlertKey.
// The zero value means no active classification.
type Classification string

const (
	ClassNone       Classification = ""
	ClassOversold   Classification = "oversold"
	ClassOverbought Classification = "overbought"
	ClassBullish    Classification = "bullish"
	ClassBearish    Classification = "bearish"
)

// PriceAlert is a one-shot user price alert, consumed on first trigger.
type PriceAlert struct {
	ID        string
	ChatID    int64
	Symbol    string
	Op        Operator
	Target    decimal.Decimal
	Timeframe Timeframe
	CreatedAt time.Time
}
