package memory

import (
	"context"
	"sync"

	"veridoc/internal/audit"
)

// Store keeps the audit trail in memory, newest entry first. It favors
// clarity over performance and is the default when no Postgres DSN is
// configured.
type Store struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]audit.Entry{entry}, s.entries...)
	return nil
}

func (s *Store) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	return append([]audit.Entry{}, s.entries[:limit]...), nil
}
