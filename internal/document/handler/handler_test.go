package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"veridoc/internal/document/handler/mocks"
	"veridoc/internal/document/models"
	"veridoc/internal/document/service"
	"veridoc/internal/signature"
	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

type DocumentHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *mocks.MockService
}

func (s *DocumentHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func TestDocumentHandlerSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerSuite))
}

func (s *DocumentHandlerSuite) sampleDocument() *models.Document {
	doc, err := models.NewDocument(domain.NewDocumentID(), "Deviation Handling SOP",
		"SOP-200", "procedure", "quality", domain.SecurityInternal, "Sam Author",
		time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	return doc
}

func (s *DocumentHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *DocumentHandlerSuite) TestCreate() {
	s.Run("returns 201 with the created document", func() {
		doc := s.sampleDocument()
		s.service.EXPECT().Create(gomock.Any(), service.CreateRequest{
			Title:    "Deviation Handling SOP",
			Number:   "SOP-200",
			Type:     "procedure",
			Category: "quality",
			Security: domain.SecurityInternal,
		}).Return(doc, nil)

		rec := s.do(http.MethodPost, "/documents", CreateDocumentRequest{
			Title:    "Deviation Handling SOP",
			Number:   "SOP-200",
			Type:     "procedure",
			Category: "quality",
			Security: "internal",
		})

		s.Equal(http.StatusCreated, rec.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(doc.ID.String(), resp["id"])
		s.Equal("Draft", resp["status"])
		s.Equal("1.0", resp["version"])
	})

	s.Run("returns 400 for a bad security class", func() {
		rec := s.do(http.MethodPost, "/documents", CreateDocumentRequest{
			Title:    "Deviation Handling SOP",
			Number:   "SOP-200",
			Type:     "procedure",
			Category: "quality",
			Security: "classified",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 400 for malformed JSON", func() {
		req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps unauthorized to 401", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))

		rec := s.do(http.MethodPost, "/documents", CreateDocumentRequest{
			Title:    "Deviation Handling SOP",
			Number:   "SOP-200",
			Type:     "procedure",
			Category: "quality",
			Security: "internal",
		})
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *DocumentHandlerSuite) TestGet() {
	s.Run("returns the document", func() {
		doc := s.sampleDocument()
		s.service.EXPECT().Get(gomock.Any(), doc.ID).Return(doc, nil)

		rec := s.do(http.MethodGet, "/documents/"+doc.ID.String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("returns 404 when hidden or missing", func() {
		id := domain.NewDocumentID()
		s.service.EXPECT().Get(gomock.Any(), id).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "document not found"))

		rec := s.do(http.MethodGet, "/documents/"+id.String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("returns 400 for a malformed id", func() {
		rec := s.do(http.MethodGet, "/documents/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *DocumentHandlerSuite) TestLifecycleEndpoints() {
	doc := s.sampleDocument()

	s.Run("submit for review", func() {
		s.service.EXPECT().SubmitForReview(gomock.Any(), doc.ID).Return(doc, nil)
		rec := s.do(http.MethodPost, "/documents/"+doc.ID.String()+"/review", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("bump version", func() {
		s.service.EXPECT().BumpVersion(gomock.Any(), doc.ID).Return(doc, nil)
		rec := s.do(http.MethodPost, "/documents/"+doc.ID.String()+"/versions", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *DocumentHandlerSuite) TestSign() {
	doc := s.sampleDocument()
	sig := signature.ElectronicSignature{
		ID:         domain.NewSignatureID(),
		DocumentID: doc.ID,
		SignerID:   domain.NewPrincipalID(),
		SignerName: "Avery QA",
		SignerRole: domain.RoleQA,
		Meaning:    domain.MeaningApproval,
		SignedAt:   time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC),
		Hash:       "$2a$08$stamp",
	}

	s.Run("returns 201 with document and signature", func() {
		s.service.EXPECT().ApplySignature(gomock.Any(), doc.ID, service.SignRequest{
			Meaning: domain.MeaningApproval,
			Reason:  "quality approval",
		}).Return(doc, &sig, nil)

		rec := s.do(http.MethodPost, "/documents/"+doc.ID.String()+"/signatures", SignDocumentRequest{
			Meaning: "approval",
			Reason:  "quality approval",
		})

		s.Equal(http.StatusCreated, rec.Code)
		var resp struct {
			Document  map[string]any `json:"document"`
			Signature map[string]any `json:"signature"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(sig.ID.String(), resp.Signature["id"])
		s.Equal("approval", resp.Signature["meaning"])
	})

	s.Run("returns 400 for an unknown meaning", func() {
		rec := s.do(http.MethodPost, "/documents/"+doc.ID.String()+"/signatures", SignDocumentRequest{
			Meaning: "witness",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("lists signatures", func() {
		s.service.EXPECT().ListSignatures(gomock.Any(), doc.ID).
			Return([]signature.ElectronicSignature{sig}, nil)

		rec := s.do(http.MethodGet, "/documents/"+doc.ID.String()+"/signatures", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Require().Len(resp, 1)
		s.Equal("Avery QA", resp[0]["signer_name"])
	})
}

func (s *DocumentHandlerSuite) TestList() {
	s.service.EXPECT().List(gomock.Any()).Return([]*models.Document{s.sampleDocument()}, nil)

	rec := s.do(http.MethodGet, "/documents", nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp, 1)
}
