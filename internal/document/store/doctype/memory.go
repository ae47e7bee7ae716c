package doctype

import (
	"context"
	"strings"
	"sync"

	"veridoc/internal/document/models"
	"veridoc/pkg/platform/sentinel"
)

// InMemory keeps document types in memory, newest first.
type InMemory struct {
	mu    sync.RWMutex
	types []*models.DocumentType
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Create(_ context.Context, dt *models.DocumentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.types {
		if strings.EqualFold(existing.Type, dt.Type) {
			return sentinel.ErrConflict
		}
	}
	cp := *dt
	s.types = append([]*models.DocumentType{&cp}, s.types...)
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.DocumentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DocumentType, 0, len(s.types))
	for _, dt := range s.types {
		cp := *dt
		out = append(out, &cp)
	}
	return out, nil
}

// ExistsByLabel reports whether a type with the given label is registered.
func (s *InMemory) ExistsByLabel(_ context.Context, label string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dt := range s.types {
		if dt.Type == label {
			return true, nil
		}
	}
	return false, nil
}
