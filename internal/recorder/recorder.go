package recorder

// IndicatorAlertEvent holds data for one emitted indicator notification.
type IndicatorAlertEvent struct {
	ChatID         int64
	Symbol         string
	Timeframe      string
	Indicator      string
	Classification string
	Value          float64
}

// PriceAlertEvent holds data for one triggered user price alert.
type PriceAlertEvent struct {
	AlertID   string
	ChatID    int64
	Symbol    string
	Timeframe string
	Operator  string
	Target    string
	Price     float64
}

// Recorder persists an audit trail of emitted alerts. Alert classification
// state itself stays in memory; this history is for later analysis only.
type Recorder interface {
	RecordIndicatorAlert(evt *IndicatorAlertEvent) error
	RecordPriceAlert(evt *PriceAlertEvent) error
	Close() error
}
