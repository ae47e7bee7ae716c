package memory

import (
	"context"
	"sync"

	"veridoc/internal/signature"
	"veridoc/pkg/domain"
)

// Store keeps signatures in memory grouped by document, newest first.
type Store struct {
	mu         sync.RWMutex
	byDocument map[domain.DocumentID][]signature.ElectronicSignature
}

func New() *Store {
	return &Store{byDocument: make(map[domain.DocumentID][]signature.ElectronicSignature)}
}

func (s *Store) Append(_ context.Context, sig signature.ElectronicSignature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byDocument[sig.DocumentID] = append(
		[]signature.ElectronicSignature{sig},
		s.byDocument[sig.DocumentID]...,
	)
	return nil
}

func (s *Store) ListByDocument(_ context.Context, docID domain.DocumentID) ([]signature.ElectronicSignature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]signature.ElectronicSignature{}, s.byDocument[docID]...), nil
}
