// Package store persists workflow reference data.
package store

import (
	"context"
	"strings"
	"sync"

	"veridoc/internal/workflow/models"
	"veridoc/pkg/platform/sentinel"
)

// InMemory keeps workflows in memory, newest first.
type InMemory struct {
	mu        sync.RWMutex
	workflows []*models.Workflow
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Create(_ context.Context, wf *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.workflows {
		if strings.EqualFold(existing.Name, wf.Name) {
			return sentinel.ErrConflict
		}
	}
	s.workflows = append([]*models.Workflow{wf.Clone()}, s.workflows...)
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Workflow, 0, len(s.workflows))
	for _, wf := range s.workflows {
		out = append(out, wf.Clone())
	}
	return out, nil
}

// ExistsByName reports whether a workflow with the given name exists.
func (s *InMemory) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, wf := range s.workflows {
		if strings.EqualFold(wf.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
