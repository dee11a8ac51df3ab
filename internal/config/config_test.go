package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Exchange.BaseURL != "https://api.bybit.com" {
		t.Errorf("unexpected default base URL: %s", cfg.Exchange.BaseURL)
	}
	if cfg.Schedule.IntervalSeconds != 60 {
		t.Errorf("expected 60s default interval, got %d", cfg.Schedule.IntervalSeconds)
	}
	if cfg.Indicators.RSI.Period != 14 || cfg.Indicators.RSI.Oversold != 30 || cfg.Indicators.RSI.Overbought != 70 {
		t.Errorf("unexpected RSI defaults: %+v", cfg.Indicators.RSI)
	}
	if cfg.Indicators.MACD.Fast != 12 || cfg.Indicators.MACD.Slow != 26 || cfg.Indicators.MACD.Signal != 9 {
		t.Errorf("unexpected MACD defaults: %+v", cfg.Indicators.MACD)
	}
	if len(cfg.Watch.Symbols) == 0 || len(cfg.Watch.Timeframes) == 0 {
		t.Error("expected default watch lists")
	}
}

func TestLoad_FileAndOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: from-file
watch:
  symbols: ["BTC/USDT"]
  timeframes: ["1h"]
schedule:
  interval_seconds: 30
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("CHECK_INTERVAL_SECONDS", "90")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("env override must win, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Schedule.IntervalSeconds != 90 {
		t.Errorf("expected interval 90 from env, got %d", cfg.Schedule.IntervalSeconds)
	}
	if len(cfg.Watch.Symbols) != 1 || cfg.Watch.Symbols[0] != "BTC/USDT" {
		t.Errorf("unexpected symbols: %v", cfg.Watch.Symbols)
	}
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "telegram:\n  bot_token: tok\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("complete config must validate: %v", err)
	}

	cfg.Watch.Timeframes = []string{"45m"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported timeframe token")
	}

	cfg.Watch.Timeframes = []string{"1h"}
	cfg.Telegram.BotToken = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing bot token")
	}
}

func TestScanTimeframes(t *testing.T) {
	path := writeConfig(t, "watch:\n  timeframes: [\"15m\", \"1d\"]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	tfs := cfg.ScanTimeframes()
	if len(tfs) != 2 || string(tfs[0]) != "15m" || string(tfs[1]) != "1d" {
		t.Errorf("unexpected timeframes: %v", tfs)
	}
}
