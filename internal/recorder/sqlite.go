package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists alert history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_alerts (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			chat_id        INTEGER,
			symbol         TEXT,
			timeframe      TEXT,
			indicator      TEXT,
			classification TEXT,
			value          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicator_ts ON indicator_alerts(timestamp)`,

		`CREATE TABLE IF NOT EXISTS price_alerts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			alert_id  TEXT,
			chat_id   INTEGER,
			symbol    TEXT,
			timeframe TEXT,
			operator  TEXT,
			target    TEXT,
			price     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_ts ON price_alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordIndicatorAlert(evt *IndicatorAlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO indicator_alerts
		(timestamp, chat_id, symbol, timeframe, indicator, classification, value)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.ChatID, evt.Symbol, evt.Timeframe,
		evt.Indicator, evt.Classification, evt.Value,
	)
	return err
}

func (r *SQLiteRecorder) RecordPriceAlert(evt *PriceAlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO price_alerts
		(timestamp, alert_id, chat_id, symbol, timeframe, operator, target, price)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.AlertID, evt.ChatID, evt.Symbol, evt.Timeframe,
		evt.Operator, evt.Target, evt.Price,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
