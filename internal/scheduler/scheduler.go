package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"CandleSentry/internal/alert"
	"CandleSentry/internal/collector"
	"CandleSentry/internal/indicator"
	"CandleSentry/internal/model"
	"CandleSentry/internal/notifier"
	"CandleSentry/internal/recorder"
)

// Sink delivers a notification to a chat. Delivery failures are logged and
// swallowed by the evaluation loop, never retried here.
type Sink interface {
	Send(chatID int64, text string) error
}

// Scheduler drives the periodic evaluation cycle and handles user commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Evaluator *alert.Evaluator
	Registry  *alert.Registry
	Notifier  Sink
	Recorder  recorder.Recorder
	Ctx       context.Context

	Symbols    []string
	Timeframes []model.Timeframe
	MAFast     int
	MASlow     int

	mu    sync.Mutex
	chats map[int64]struct{}
}

// NewScheduler creates a Scheduler. Chats passed here are pre-registered for
// scheduled indicator alerts; more join at runtime via /start.
func NewScheduler(ctx context.Context, col *collector.Collector, ev *alert.Evaluator, reg *alert.Registry, sink Sink, rec recorder.Recorder, symbols []string, timeframes []model.Timeframe, chats []int64) *Scheduler {
	s := &Scheduler{
		// SkipIfStillRunning guarantees cycles never overlap: a slow cycle
		// causes the next tick to be dropped, not queued.
		Cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		Collector:  col,
		Evaluator:  ev,
		Registry:   reg,
		Notifier:   sink,
		Recorder:   rec,
		Ctx:        ctx,
		Symbols:    symbols,
		Timeframes: timeframes,
		MAFast:     col.Cfg.MAFast,
		MASlow:     col.Cfg.MASlow,
		chats:      make(map[int64]struct{}),
	}
	for _, id := range chats {
		s.chats[id] = struct{}{}
	}
	return s
}

// Register schedules the evaluation cycle at the given period in seconds.
func (s *Scheduler) Register(intervalSeconds int) error {
	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	if _, err := s.Cron.AddFunc(spec, s.RunCycle); err != nil {
		return fmt.Errorf("register evaluation cycle: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RegisterChat adds a chat to the scheduled indicator scan.
func (s *Scheduler) RegisterChat(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatID] = struct{}{}
}

// Chats returns the registered chat IDs in stable order.
func (s *Scheduler) Chats() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RunCycle runs one full evaluation pass: every registered chat × tracked
// symbol × scan timeframe for indicator alerts, then one sweep over all user
// price alerts. No single failure aborts the rest of the cycle.
func (s *Scheduler) RunCycle() {
	for _, chatID := range s.Chats() {
		for _, symbol := range s.Symbols {
			for _, tf := range s.Timeframes {
				snap, err := s.Collector.Snapshot(s.Ctx, symbol, tf)
				if err != nil {
					log.Printf("[WARN] snapshot %s %s: %v", symbol, tf, err)
					continue
				}
				s.checkIndicators(chatID, snap)
			}
		}
	}
	s.sweepPriceAlerts()
}

// checkIndicators evaluates RSI, MACD, and MA-crossover for one snapshot and
// notifies the chat on every firing transition.
func (s *Scheduler) checkIndicators(chatID int64, snap *model.IndicatorSnapshot) {
	if rsi, ok := indicator.Last(snap.RSI); ok {
		key := model.AlertKey{Symbol: snap.Symbol, Timeframe: snap.Timeframe, Indicator: model.IndicatorRSI}
		if class, fired := s.Evaluator.EvaluateRSI(key, rsi); fired {
			s.trySend(chatID, notifier.FormatRSIAlert(snap.Symbol, snap.Timeframe, class, rsi))
			s.recordIndicatorAlert(chatID, key, class, rsi)
		}
	}

	prevMACD, currMACD, okM := indicator.LastTwo(snap.MACD)
	prevSig, currSig, okS := indicator.LastTwo(snap.MACDSignal)
	if okM && okS {
		key := model.AlertKey{Symbol: snap.Symbol, Timeframe: snap.Timeframe, Indicator: model.IndicatorMACD}
		if class, fired := s.Evaluator.EvaluateCrossover(key, prevMACD, prevSig, currMACD, currSig); fired {
			s.trySend(chatID, notifier.FormatMACDAlert(snap.Symbol, snap.Timeframe, class))
			s.recordIndicatorAlert(chatID, key, class, currMACD-currSig)
		}
	}

	prevEMA, currEMA, okE := indicator.LastTwo(snap.EMAFast)
	prevSMA, currSMA, okA := indicator.LastTwo(snap.SMASlow)
	if okE && okA {
		key := model.AlertKey{Symbol: snap.Symbol, Timeframe: snap.Timeframe, Indicator: model.IndicatorCrossover}
		if class, fired := s.Evaluator.EvaluateCrossover(key, prevEMA, prevSMA, currEMA, currSMA); fired {
			s.trySend(chatID, notifier.FormatMACrossAlert(snap.Symbol, snap.Timeframe, class, s.MAFast, s.MASlow))
			s.recordIndicatorAlert(chatID, key, class, currEMA-currSMA)
		}
	}
}

// sweepPriceAlerts evaluates every one-shot alert against the latest close
// and consumes the ones that trigger. The sweep works on a snapshot copy;
// triggered alerts are deleted by ID afterwards, never mid-iteration.
func (s *Scheduler) sweepPriceAlerts() {
	for _, a := range s.Registry.All() {
		price, err := s.Collector.LatestClose(s.Ctx, a.Symbol, a.Timeframe)
		if err != nil {
			log.Printf("[WARN] price alert %s (%s): %v", a.ID[:8], a.Symbol, err)
			continue
		}
		if !a.Op.Holds(decimal.NewFromFloat(price), a.Target) {
			continue
		}
		s.trySend(a.ChatID, notifier.FormatPriceAlertTriggered(a, price))
		s.Registry.Delete(a.ChatID, a.ID)
		if err := s.Recorder.RecordPriceAlert(&recorder.PriceAlertEvent{
			AlertID:   a.ID,
			ChatID:    a.ChatID,
			Symbol:    a.Symbol,
			Timeframe: string(a.Timeframe),
			Operator:  string(a.Op),
			Target:    a.Target.String(),
			Price:     price,
		}); err != nil {
			log.Printf("[ERROR] record price alert: %v", err)
		}
	}
}

func (s *Scheduler) recordIndicatorAlert(chatID int64, key model.AlertKey, class model.Classification, value float64) {
	if err := s.Recorder.RecordIndicatorAlert(&recorder.IndicatorAlertEvent{
		ChatID:         chatID,
		Symbol:         key.Symbol,
		Timeframe:      string(key.Timeframe),
		Indicator:      string(key.Indicator),
		Classification: string(class),
		Value:          value,
	}); err != nil {
		log.Printf("[ERROR] record indicator alert: %v", err)
	}
}

func (s *Scheduler) trySend(chatID int64, text string) {
	if err := s.Notifier.Send(chatID, text); err != nil {
		log.Printf("[ERROR] send notification to chat %d: %v", chatID, err)
	}
}
