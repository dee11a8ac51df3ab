package alert

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"CandleSentry/internal/model"
)

// ErrNotFound is returned when no alert matches a removal request.
var ErrNotFound = errors.New("alert not found")

// Registry holds one-shot user price alerts, ordered per chat by creation.
type Registry struct {
	mu     sync.Mutex
	alerts map[int64][]model.PriceAlert
	order  []int64 // chat iteration order, first registration first
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{alerts: make(map[int64][]model.PriceAlert)}
}

// Add appends a new alert to the chat's list and returns it with a fresh ID.
// Identical alerts may coexist; no duplicate detection is done.
func (r *Registry) Add(chatID int64, symbol string, op model.Operator, target decimal.Decimal, tf model.Timeframe) model.PriceAlert {
	a := model.PriceAlert{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Symbol:    strings.ToUpper(symbol),
		Op:        op,
		Target:    target,
		Timeframe: tf,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.alerts[chatID]; !seen {
		r.order = append(r.order, chatID)
	}
	r.alerts[chatID] = append(r.alerts[chatID], a)
	return a
}

// List returns a copy of the chat's alerts in creation order.
func (r *Registry) List(chatID int64) []model.PriceAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.PriceAlert, len(r.alerts[chatID]))
	copy(out, r.alerts[chatID])
	return out
}

// RemoveByPrefix removes the first alert whose ID starts with the given
// prefix and returns it. Ambiguous prefixes match only the first in order.
func (r *Registry) RemoveByPrefix(chatID int64, prefix string) (model.PriceAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.alerts[chatID]
	for i, a := range list {
		if strings.HasPrefix(a.ID, prefix) {
			r.alerts[chatID] = append(list[:i:i], list[i+1:]...)
			return a, nil
		}
	}
	return model.PriceAlert{}, ErrNotFound
}

// Delete removes an alert by exact ID, reporting whether it was present.
// Used by the sweep to consume triggered alerts.
func (r *Registry) Delete(chatID int64, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.alerts[chatID]
	for i, a := range list {
		if a.ID == id {
			r.alerts[chatID] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a snapshot of every alert across all chats. Callers evaluate
// the copy and consume triggered alerts via Delete, never while iterating
// the live collection.
func (r *Registry) All() []model.PriceAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PriceAlert
	for _, chatID := range r.order {
		out = append(out, r.alerts[chatID]...)
	}
	return out
}
