package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"CandleSentry/internal/alert"
	"CandleSentry/internal/model"
	"CandleSentry/internal/notifier"
)

// HandleCommand processes a user command and returns the reply text.
// Invalid input is rejected synchronously with a descriptive message and
// mutates no state.
func (s *Scheduler) HandleCommand(chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/start":
		s.RegisterChat(chatID)
		return "Welcome! You will now receive indicator alerts.\n\n" + notifier.HelpText
	case "/setprice":
		return s.handleSetPrice(chatID, fields[1:])
	case "/listalerts":
		return notifier.FormatAlertList(s.Registry.List(chatID))
	case "/removealert":
		return s.handleRemoveAlert(chatID, fields[1:])
	case "/status":
		return s.handleStatus()
	case "/help", "/commands":
		return notifier.HelpText
	default:
		return "Unknown command. Use /help to list available commands."
	}
}

func (s *Scheduler) handleSetPrice(chatID int64, args []string) string {
	if len(args) != 3 && len(args) != 4 {
		return "Usage: /setprice SYMBOL OPERATOR PRICE [TIMEFRAME]\nExample: /setprice BTC/USDT > 30000 5m"
	}

	op, ok := model.ParseOperator(args[1])
	if !ok {
		return fmt.Sprintf("Invalid operator. Use one of: %s", joinOperators())
	}

	target, err := decimal.NewFromString(args[2])
	if err != nil {
		return "Invalid price. Must be a number."
	}

	tf := model.TF1m
	if len(args) == 4 {
		if tf, ok = model.ParseTimeframe(args[3]); !ok {
			return fmt.Sprintf("Invalid timeframe. Choose from: %s", joinTimeframes())
		}
	}

	a := s.Registry.Add(chatID, args[0], op, target, tf)
	return notifier.FormatAlertSet(a)
}

func (s *Scheduler) handleRemoveAlert(chatID int64, args []string) string {
	if len(args) != 1 {
		return "Usage: /removealert ALERT_ID\nUse /listalerts to get IDs."
	}
	if _, err := s.Registry.RemoveByPrefix(chatID, args[0]); err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			return fmt.Sprintf("No alert found with ID starting '%s'", args[0])
		}
		return fmt.Sprintf("Failed to remove alert: %v", err)
	}
	return fmt.Sprintf("Removed alert %s", args[0])
}

func (s *Scheduler) handleStatus() string {
	prices := make(map[string]float64, len(s.Symbols))
	for _, symbol := range s.Symbols {
		price, err := s.Collector.LatestClose(s.Ctx, symbol, model.TF1m)
		if err != nil {
			prices[symbol] = -1
			continue
		}
		prices[symbol] = price
	}
	return notifier.FormatStatus(s.Symbols, prices)
}

func joinOperators() string {
	parts := make([]string, len(model.Operators))
	for i, op := range model.Operators {
		parts[i] = string(op)
	}
	return strings.Join(parts, ", ")
}

func joinTimeframes() string {
	parts := make([]string, len(model.Timeframes))
	for i, tf := range model.Timeframes {
		parts[i] = string(tf)
	}
	return strings.Join(parts, ", ")
}
