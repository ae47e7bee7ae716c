package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veridoc/internal/document/models"
	"veridoc/internal/document/service"
	"veridoc/internal/signature"
	"veridoc/pkg/domain"
	"veridoc/pkg/platform/httputil"
	"veridoc/pkg/requestcontext"
)

// Service defines the document operations the handler depends on.
type Service interface {
	Create(ctx context.Context, req service.CreateRequest) (*models.Document, error)
	SubmitForReview(ctx context.Context, id domain.DocumentID) (*models.Document, error)
	BumpVersion(ctx context.Context, id domain.DocumentID) (*models.Document, error)
	ApplySignature(ctx context.Context, id domain.DocumentID, req service.SignRequest) (*models.Document, *signature.ElectronicSignature, error)
	Get(ctx context.Context, id domain.DocumentID) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	ListSignatures(ctx context.Context, id domain.DocumentID) ([]signature.ElectronicSignature, error)
}

// Handler wires document endpoints to the document service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts document endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Post("/review", h.HandleSubmitForReview)
			r.Post("/versions", h.HandleBumpVersion)
			r.Post("/signatures", h.HandleSign)
			r.Get("/signatures", h.HandleListSignatures)
		})
	})
}

// HandleCreate handles POST /documents.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[*CreateDocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	doc, err := h.service.Create(ctx, service.CreateRequest{
		Title:    req.Title,
		Number:   req.Number,
		Type:     req.Type,
		Category: req.Category,
		Security: req.ParsedSecurity(),
	})
	if err != nil {
		h.logError(ctx, "document creation failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, fromDocument(doc))
}

// HandleList handles GET /documents.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context())
	if err != nil {
		h.logError(r.Context(), "document listing failed", requestcontext.RequestID(r.Context()), err)
		httputil.WriteError(w, err)
		return
	}
	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, fromDocument(d))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /documents/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDocument(doc))
}

// HandleSubmitForReview handles POST /documents/{id}/review.
func (h *Handler) HandleSubmitForReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.SubmitForReview(r.Context(), id)
	if err != nil {
		h.logError(r.Context(), "submit for review failed", requestcontext.RequestID(r.Context()), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDocument(doc))
}

// HandleBumpVersion handles POST /documents/{id}/versions.
func (h *Handler) HandleBumpVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.BumpVersion(r.Context(), id)
	if err != nil {
		h.logError(r.Context(), "version bump failed", requestcontext.RequestID(r.Context()), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromDocument(doc))
}

// HandleSign handles POST /documents/{id}/signatures.
func (h *Handler) HandleSign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[*SignDocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	doc, sig, err := h.service.ApplySignature(ctx, id, service.SignRequest{
		Meaning: req.ParsedMeaning(),
		Reason:  req.Reason,
	})
	if err != nil {
		h.logError(ctx, "signature application failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, signResponse{
		Document:  fromDocument(doc),
		Signature: fromSignature(*sig),
	})
}

// HandleListSignatures handles GET /documents/{id}/signatures.
func (h *Handler) HandleListSignatures(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	sigs, err := h.service.ListSignatures(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := make([]signatureResponse, 0, len(sigs))
	for _, s := range sigs {
		resp = append(resp, fromSignature(s))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) documentID(w http.ResponseWriter, r *http.Request) (domain.DocumentID, bool) {
	id, err := domain.ParseDocumentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.DocumentID{}, false
	}
	return id, true
}

func (h *Handler) logError(ctx context.Context, msg, requestID string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
}
