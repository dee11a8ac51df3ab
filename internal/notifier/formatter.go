package notifier

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"CandleSentry/internal/model"
)

// FormatRSIAlert formats an RSI threshold alert.
func FormatRSIAlert(symbol string, tf model.Timeframe, class model.Classification, value float64) string {
	if class == model.ClassOversold {
		return fmt.Sprintf("⚠️ %s RSI is oversold at %.2f on %s timeframe (buy opportunity?)", symbol, value, tf)
	}
	return fmt.Sprintf("⚠️ %s RSI is overbought at %.2f on %s timeframe (sell opportunity?)", symbol, value, tf)
}

// FormatMACDAlert formats a MACD/signal crossover alert.
func FormatMACDAlert(symbol string, tf model.Timeframe, class model.Classification) string {
	if class == model.ClassBullish {
		return fmt.Sprintf("📈 %s MACD bullish crossover detected on %s, consider buying.", symbol, tf)
	}
	return fmt.Sprintf("📉 %s MACD bearish crossover detected on %s, consider selling.", symbol, tf)
}

// FormatMACrossAlert formats a fast-EMA/slow-SMA crossover alert.
func FormatMACrossAlert(symbol string, tf model.Timeframe, class model.Classification, fast, slow int) string {
	if class == model.ClassBullish {
		return fmt.Sprintf("📈 %s EMA(%d) crossed above SMA(%d) on %s, bullish signal.", symbol, fast, slow, tf)
	}
	return fmt.Sprintf("📉 %s EMA(%d) crossed below SMA(%d) on %s, bearish signal.", symbol, fast, slow, tf)
}

// FormatPriceAlertTriggered formats a fired one-shot price alert.
func FormatPriceAlertTriggered(a model.PriceAlert, price float64) string {
	return fmt.Sprintf("💰 Alert: %s price is %.4f which is %s %s", a.Symbol, price, a.Op, a.Target)
}

// FormatAlertSet confirms a newly registered price alert.
func FormatAlertSet(a model.PriceAlert) string {
	return fmt.Sprintf("Alert set: %s %s %s on %s timeframe", a.Symbol, a.Op, a.Target, a.Timeframe)
}

// FormatAlertList renders a chat's active alerts, short IDs first.
func FormatAlertList(alerts []model.PriceAlert) string {
	if len(alerts) == 0 {
		return "You have no active alerts."
	}
	var b strings.Builder
	b.WriteString("Your alerts:")
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("\n%s: %s %s %s on %s", a.ID[:8], a.Symbol, a.Op, a.Target, a.Timeframe))
	}
	return b.String()
}

// FormatStatus renders the latest close price per tracked symbol.
// A negative price marks a fetch failure for that symbol.
func FormatStatus(symbols []string, prices map[string]float64) string {
	var b strings.Builder
	b.WriteString("📊 Current Prices:")
	for _, s := range symbols {
		price, ok := prices[s]
		if !ok || price < 0 {
			b.WriteString(fmt.Sprintf("\n%s: error fetching price", s))
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s: %s", s, humanize.CommafWithDigits(price, 4)))
	}
	return b.String()
}

// HelpText is the command reference shown by /help and /commands.
const HelpText = "/setprice SYMBOL OPERATOR PRICE [TIMEFRAME] - Set a price alert (timeframe optional, default 1m)\n" +
	"Example: /setprice BTC/USDT > 30000 5m\n" +
	"/listalerts - List your alerts\n" +
	"/removealert ALERT_ID - Remove an alert\n" +
	"/status - Show tracked symbols\n" +
	"/help - Show this help message\n" +
	"/commands - Show this list of commands\n"
