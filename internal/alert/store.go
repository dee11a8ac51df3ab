package alert

import (
	"sync"

	"CandleSentry/internal/model"
)

// Store holds the last emitted classification per alert key. State lives for
// the process lifetime only; keys are created lazily and never deleted.
type Store struct {
	mu    sync.Mutex
	state map[model.AlertKey]model.Classification
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{state: make(map[model.AlertKey]model.Classification)}
}

// Get returns the stored classification for a key, ClassNone if unseen.
func (s *Store) Get(key model.AlertKey) model.Classification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[key]
}

// Apply runs fn against the stored classification and writes back its result
// as one atomic read-modify-write. The new classification is returned.
func (s *Store) Apply(key model.AlertKey, fn func(prev model.Classification) model.Classification) model.Classification {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.state[key])
	s.state[key] = next
	return next
}
