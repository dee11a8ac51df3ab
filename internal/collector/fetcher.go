package collector

import (
	"context"
	"errors"

	"CandleSentry/internal/model"
)

// ErrDataUnavailable wraps fetch failures: network errors, exchange errors,
// or unknown symbols. Callers skip the affected key until the next cycle.
var ErrDataUnavailable = errors.New("market data unavailable")

// ErrInsufficientData is returned when a series is too short for the
// requested indicators. Not fatal; the key is retried next cycle.
var ErrInsufficientData = errors.New("insufficient candle history")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchCandles returns up to limit candles for the symbol and timeframe,
	// ordered oldest first.
	FetchCandles(ctx context.Context, symbol string, tf model.Timeframe, limit int) ([]model.Candle, error)
	Name() string
}
