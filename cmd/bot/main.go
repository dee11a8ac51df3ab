package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CandleSentry/internal/alert"
	"CandleSentry/internal/collector"
	"CandleSentry/internal/config"
	"CandleSentry/internal/notifier"
	"CandleSentry/internal/recorder"
	"CandleSentry/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CandleSentry starting...")

	// .env is optional; real deployments use environment variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("MOCK_EXCHANGE") == "true" {
		fetcher = &collector.MockFetcher{Price: 30000}
	} else {
		fetcher = collector.NewBybitFetcher(cfg.Exchange.BaseURL, cfg.Exchange.Category, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, collector.Config{
		CandleLimit: cfg.Indicators.CandleLimit,
		RSIPeriod:   cfg.Indicators.RSI.Period,
		MACDFast:    cfg.Indicators.MACD.Fast,
		MACDSlow:    cfg.Indicators.MACD.Slow,
		MACDSignal:  cfg.Indicators.MACD.Signal,
		MAFast:      cfg.Indicators.MA.Fast,
		MASlow:      cfg.Indicators.MA.Slow,
	})

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Alert state and user alert registry live in memory for the process
	// lifetime; a restart starts clean.
	store := alert.NewStore()
	ev := alert.NewEvaluator(store, cfg.Indicators.RSI.Oversold, cfg.Indicators.RSI.Overbought)
	reg := alert.NewRegistry()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, ev, reg, tn, rec,
		cfg.Watch.Symbols, cfg.ScanTimeframes(), cfg.Telegram.ChatIDs)
	if err := sched.Register(cfg.Schedule.IntervalSeconds); err != nil {
		log.Fatalf("[FATAL] register evaluation cycle: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Announce startup to pre-registered chats
	for _, chatID := range cfg.Telegram.ChatIDs {
		if err := tn.SendWithRetry(ctx, chatID, "CandleSentry is up. Use /help for commands.", 3); err != nil {
			log.Printf("[WARN] startup announcement to chat %d: %v", chatID, err)
		}
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing evaluation cycle now")
		go sched.RunCycle()
	}

	log.Println("[INFO] CandleSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CandleSentry stopped")
}
