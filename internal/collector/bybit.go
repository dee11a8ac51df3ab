package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"CandleSentry/internal/model"
)

// BybitFetcher implements Fetcher using the Bybit v5 market REST API.
type BybitFetcher struct {
	BaseURL  string
	Category string
	Client   *http.Client
	limiter  *rate.Limiter
}

// NewBybitFetcher creates a fetcher with optional proxy support. Requests are
// rate-limited to one per 200ms to stay inside the public API budget.
func NewBybitFetcher(baseURL, category, proxyURL string) *BybitFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://api.bybit.com"
	}
	if category == "" {
		category = "spot"
	}
	return &BybitFetcher{
		BaseURL:  baseURL,
		Category: category,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

func (f *BybitFetcher) Name() string { return "bybit" }

// intervals maps timeframe tokens to Bybit kline interval codes.
var intervals = map[model.Timeframe]string{
	model.TF1m:  "1",
	model.TF3m:  "3",
	model.TF5m:  "5",
	model.TF15m: "15",
	model.TF30m: "30",
	model.TF1h:  "60",
	model.TF2h:  "120",
	model.TF4h:  "240",
	model.TF6h:  "360",
	model.TF12h: "720",
	model.TF1d:  "D",
	model.TF1w:  "W",
}

// bybitSymbol converts "BTC/USDT" into the exchange-native "BTCUSDT".
func bybitSymbol(symbol string) string {
	return strings.ReplaceAll(strings.ToUpper(symbol), "/", "")
}

// klineResponse is the v5 market/kline JSON shape. Each list entry is
// [startTime, open, high, low, close, volume, turnover], newest first.
type klineResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Symbol string     `json:"symbol"`
		List   [][]string `json:"list"`
	} `json:"result"`
}

func (f *BybitFetcher) FetchCandles(ctx context.Context, symbol string, tf model.Timeframe, limit int) ([]model.Candle, error) {
	interval, ok := intervals[tf]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported timeframe %q", ErrDataUnavailable, tf)
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	endpoint := fmt.Sprintf("%s/v5/market/kline?category=%s&symbol=%s&interval=%s&limit=%d",
		f.BaseURL, f.Category, url.QueryEscape(bybitSymbol(symbol)), interval, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch kline: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrDataUnavailable, resp.StatusCode, string(body))
	}

	var kr klineResponse
	if err := json.NewDecoder(resp.Body).Decode(&kr); err != nil {
		return nil, fmt.Errorf("%w: decode kline: %v", ErrDataUnavailable, err)
	}
	if kr.RetCode != 0 {
		return nil, fmt.Errorf("%w: bybit error %d: %s", ErrDataUnavailable, kr.RetCode, kr.RetMsg)
	}
	if len(kr.Result.List) == 0 {
		return nil, fmt.Errorf("%w: no kline data for %s", ErrDataUnavailable, symbol)
	}

	candles := make([]model.Candle, 0, len(kr.Result.List))
	for _, row := range kr.Result.List {
		if len(row) < 6 {
			continue
		}
		c, err := parseKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: parse kline row: %v", ErrDataUnavailable, err)
		}
		candles = append(candles, c)
	}

	// Bybit returns newest first; evaluation wants chronological order.
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

func parseKlineRow(row []string) (model.Candle, error) {
	ms, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.Candle{}, err
	}
	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return model.Candle{}, err
		}
		vals[i] = v
	}
	return model.Candle{
		Time:   time.UnixMilli(ms),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
