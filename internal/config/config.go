package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"CandleSentry/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string  `yaml:"bot_token"`
		ChatIDs  []int64 `yaml:"chat_ids"`
	} `yaml:"telegram"`
	Exchange struct {
		BaseURL  string `yaml:"base_url"`
		Category string `yaml:"category"`
	} `yaml:"exchange"`
	Watch struct {
		Symbols    []string `yaml:"symbols"`
		Timeframes []string `yaml:"timeframes"`
	} `yaml:"watch"`
	Schedule struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"schedule"`
	Indicators struct {
		CandleLimit int `yaml:"candle_limit"`
		RSI         struct {
			Period     int     `yaml:"period"`
			Oversold   float64 `yaml:"oversold"`
			Overbought float64 `yaml:"overbought"`
		} `yaml:"rsi"`
		MACD struct {
			Fast   int `yaml:"fast"`
			Slow   int `yaml:"slow"`
			Signal int `yaml:"signal"`
		} `yaml:"macd"`
		MA struct {
			Fast int `yaml:"fast"`
			Slow int `yaml:"slow"`
		} `yaml:"ma"`
	} `yaml:"indicators"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_IDS"); v != "" {
		cfg.Telegram.ChatIDs = nil
		for _, part := range strings.Split(v, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
				cfg.Telegram.ChatIDs = append(cfg.Telegram.ChatIDs, id)
			}
		}
	}
	if v := os.Getenv("BYBIT_BASE_URL"); v != "" {
		cfg.Exchange.BaseURL = v
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Watch.Symbols = splitList(v)
	}
	if v := os.Getenv("WATCH_TIMEFRAMES"); v != "" {
		cfg.Watch.Timeframes = splitList(v)
	}
	if v := os.Getenv("CHECK_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.IntervalSeconds = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Exchange.BaseURL == "" {
		cfg.Exchange.BaseURL = "https://api.bybit.com"
	}
	if cfg.Exchange.Category == "" {
		cfg.Exchange.Category = "spot"
	}
	if len(cfg.Watch.Symbols) == 0 {
		cfg.Watch.Symbols = []string{"BTC/USDT", "ETH/USDT", "SOL/USDT", "XRP/USDT", "SUI/USDT", "NEAR/USDT"}
	}
	if len(cfg.Watch.Timeframes) == 0 {
		cfg.Watch.Timeframes = []string{"15m", "30m", "1h", "4h", "1d", "1w"}
	}
	if cfg.Schedule.IntervalSeconds == 0 {
		cfg.Schedule.IntervalSeconds = 60
	}
	ind := &cfg.Indicators
	if ind.CandleLimit == 0 {
		ind.CandleLimit = 100
	}
	if ind.RSI.Period == 0 {
		ind.RSI.Period = 14
	}
	if ind.RSI.Oversold == 0 {
		ind.RSI.Oversold = 30
	}
	if ind.RSI.Overbought == 0 {
		ind.RSI.Overbought = 70
	}
	if ind.MACD.Fast == 0 {
		ind.MACD.Fast = 12
	}
	if ind.MACD.Slow == 0 {
		ind.MACD.Slow = 26
	}
	if ind.MACD.Signal == 0 {
		ind.MACD.Signal = 9
	}
	if ind.MA.Fast == 0 {
		ind.MA.Fast = 12
	}
	if ind.MA.Slow == 0 {
		ind.MA.Slow = 26
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if len(c.Watch.Symbols) == 0 {
		return fmt.Errorf("watch.symbols must not be empty")
	}
	for _, tf := range c.Watch.Timeframes {
		if _, ok := model.ParseTimeframe(tf); !ok {
			return fmt.Errorf("watch.timeframes: unsupported token %q", tf)
		}
	}
	if c.Indicators.RSI.Oversold >= c.Indicators.RSI.Overbought {
		return fmt.Errorf("indicators.rsi: oversold must be below overbought")
	}
	if c.Schedule.IntervalSeconds < 1 {
		return fmt.Errorf("schedule.interval_seconds must be positive")
	}
	return nil
}

// ScanTimeframes returns the configured timeframes as typed tokens.
func (c *Config) ScanTimeframes() []model.Timeframe {
	out := make([]model.Timeframe, 0, len(c.Watch.Timeframes))
	for _, s := range c.Watch.Timeframes {
		if tf, ok := model.ParseTimeframe(s); ok {
			out = append(out, tf)
		}
	}
	return out
}
