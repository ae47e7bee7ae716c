package document

import (
	"context"
	"strings"
	"sync"

	"veridoc/internal/document/models"
	"veridoc/pkg/domain"
	"veridoc/pkg/platform/sentinel"
)

// InMemory keeps documents in memory. It is the default store when no
// Postgres DSN is configured and the workhorse of the unit tests.
//
// Execute holds the store mutex across both the validate and mutate
// callbacks, so concurrent mutations of the same document serialize instead
// of losing updates.
type InMemory struct {
	mu   sync.RWMutex
	docs map[domain.DocumentID]*models.Document
	// order tracks insertion, newest first, for stable listings.
	order []domain.DocumentID
}

func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[domain.DocumentID]*models.Document)}
}

// CreateIfNumberAvailable inserts the document unless another document
// already uses its business number (case-insensitive).
func (s *InMemory) CreateIfNumberAvailable(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if strings.EqualFold(existing.Number, doc.Number) {
			return sentinel.ErrConflict
		}
	}
	s.docs[doc.ID] = doc.Clone()
	s.order = append([]domain.DocumentID{doc.ID}, s.order...)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return doc.Clone(), nil
}

// List returns all documents, newest first.
func (s *InMemory) List(_ context.Context) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]*models.Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id].Clone())
	}
	return docs, nil
}

// Execute runs validate then mutate on the stored document under the store
// lock and returns a copy of the updated document.
func (s *InMemory) Execute(_ context.Context, id domain.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(doc); err != nil {
			return nil, err
		}
	}
	mutate(doc)
	return doc.Clone(), nil
}
