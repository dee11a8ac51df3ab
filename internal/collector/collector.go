package collector

import (
	"context"
	"fmt"
	"time"

	"CandleSentry/internal/indicator"
	"CandleSentry/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	// Candles, when set, is keyed by "SYMBOL|timeframe".
	Candles map[string][]model.Candle
	Price   float64
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ context.Context, symbol string, tf model.Timeframe, limit int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		if c, ok := m.Candles[symbol+"|"+string(tf)]; ok {
			return c, nil
		}
		return nil, fmt.Errorf("%w: no mock data for %s %s", ErrDataUnavailable, symbol, tf)
	}
	return GenerateCandles(m.Price, limit), nil
}

// GenerateCandles builds a gently trending synthetic series around basePrice.
func GenerateCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Time:   time.Now().Add(-time.Duration(count-i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
		}
	}
	return candles
}

// Config holds indicator lookback windows for snapshot computation.
type Config struct {
	CandleLimit int
	RSIPeriod   int
	MACDFast    int
	MACDSlow    int
	MACDSignal  int
	MAFast      int
	MASlow      int
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Cfg     Config
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, cfg Config) *Collector {
	if cfg.CandleLimit == 0 {
		cfg.CandleLimit = 100
	}
	return &Collector{Fetcher: fetcher, Cfg: cfg}
}

// Snapshot fetches candles for one (symbol, timeframe) pair and computes all
// indicator series over the close prices.
func (c *Collector) Snapshot(ctx context.Context, symbol string, tf model.Timeframe) (*model.IndicatorSnapshot, error) {
	candles, err := c.Fetcher.FetchCandles(ctx, symbol, tf, c.Cfg.CandleLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s %s: %w", symbol, tf, err)
	}
	if len(candles) < 2 {
		return nil, fmt.Errorf("%s %s: %w", symbol, tf, ErrInsufficientData)
	}

	closes := model.Closes(candles)
	macd, signal := indicator.MACD(closes, c.Cfg.MACDFast, c.Cfg.MACDSlow, c.Cfg.MACDSignal)

	return &model.IndicatorSnapshot{
		Symbol:     symbol,
		Timeframe:  tf,
		Closes:     closes,
		RSI:        indicator.RSI(closes, c.Cfg.RSIPeriod),
		MACD:       macd,
		MACDSignal: signal,
		EMAFast:    indicator.EMA(closes, c.Cfg.MAFast),
		SMASlow:    indicator.SMA(closes, c.Cfg.MASlow),
	}, nil
}

// LatestClose returns the most recent close price for a symbol/timeframe.
func (c *Collector) LatestClose(ctx context.Context, symbol string, tf model.Timeframe) (float64, error) {
	candles, err := c.Fetcher.FetchCandles(ctx, symbol, tf, 1)
	if err != nil {
		return 0, fmt.Errorf("fetch latest close %s %s: %w", symbol, tf, err)
	}
	if len(candles) == 0 {
		return 0, fmt.Errorf("%s %s: %w", symbol, tf, ErrInsufficientData)
	}
	return candles[len(candles)-1].Close, nil
}
