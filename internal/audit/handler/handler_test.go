package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"veridoc/internal/audit"
	auditmemory "veridoc/internal/audit/store/memory"
	"veridoc/pkg/domain"
	"veridoc/pkg/requestcontext"
)

type AuditHandlerSuite struct {
	suite.Suite
	router   chi.Router
	recorder *audit.Recorder
}

func (s *AuditHandlerSuite) SetupTest() {
	s.recorder = audit.NewRecorder(auditmemory.New())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.recorder, logger).Register(s.router)
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}

func (s *AuditHandlerSuite) get(path string, principal *domain.Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if principal != nil {
		req = req.WithContext(requestcontext.WithPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuditHandlerSuite) viewer() *domain.Principal {
	return &domain.Principal{ID: domain.NewPrincipalID(), Name: "Vic Viewer", Role: domain.RoleViewer}
}

func (s *AuditHandlerSuite) record(entityID string) {
	_, err := s.recorder.Record(context.Background(), audit.Entry{
		ActorName: "Avery QA",
		ActorRole: domain.RoleQA,
		Action:    audit.ActionCreate,
		Entity:    audit.EntityDocument,
		EntityID:  entityID,
	})
	s.Require().NoError(err)
}

func (s *AuditHandlerSuite) TestRejectsAnonymousCallers() {
	rec := s.get("/audit", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuditHandlerSuite) TestListsNewestFirst() {
	s.record("doc-1")
	s.record("doc-2")

	rec := s.get("/audit", s.viewer())
	s.Require().Equal(http.StatusOK, rec.Code)

	var entries []entryResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&entries))
	s.Require().Len(entries, 2)
	s.Equal("doc-2", entries[0].EntityID)
	s.Equal("doc-1", entries[1].EntityID)
	s.Empty(entries[0].ActorID, "anonymous actor id stays out of the payload")
	s.Equal(string(domain.RoleQA), entries[0].ActorRole)
}

func (s *AuditHandlerSuite) TestHonorsLimitParameter() {
	for _, id := range []string{"doc-1", "doc-2", "doc-3"} {
		s.record(id)
	}

	rec := s.get("/audit?limit=2", s.viewer())
	s.Require().Equal(http.StatusOK, rec.Code)

	var entries []entryResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&entries))
	s.Len(entries, 2)
}

func (s *AuditHandlerSuite) TestIgnoresUnparseableLimit() {
	s.record("doc-1")

	rec := s.get("/audit?limit=bogus", s.viewer())
	s.Require().Equal(http.StatusOK, rec.Code)

	var entries []entryResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&entries))
	s.Len(entries, 1)
}
