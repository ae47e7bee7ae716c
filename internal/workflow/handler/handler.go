package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	docmodels "veridoc/internal/document/models"
	"veridoc/internal/workflow/models"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/platform/httputil"
	"veridoc/pkg/requestcontext"
)

// Service defines the reference-data operations the handler depends on.
type Service interface {
	AddWorkflow(ctx context.Context, name, category string) (*models.Workflow, error)
	ListWorkflows(ctx context.Context) ([]*models.Workflow, error)
	AddType(ctx context.Context, label, description string) (*docmodels.DocumentType, error)
	ListTypes(ctx context.Context) ([]*docmodels.DocumentType, error)
}

// Handler wires workflow and document type endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts reference-data endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/workflows", h.HandleAddWorkflow)
	r.Get("/workflows", h.HandleListWorkflows)
	r.Post("/document-types", h.HandleAddType)
	r.Get("/document-types", h.HandleListTypes)
}

// AddWorkflowRequest is the HTTP request body for POST /workflows.
type AddWorkflowRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Validate normalizes the request. Length constraints are enforced by the
// workflow constructor.
func (r *AddWorkflowRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	return nil
}

// AddTypeRequest is the HTTP request body for POST /document-types.
type AddTypeRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Validate normalizes the request. Length constraints are enforced by the
// document type constructor.
func (r *AddTypeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Type = strings.TrimSpace(r.Type)
	r.Description = strings.TrimSpace(r.Description)
	return nil
}

// HandleAddWorkflow handles POST /workflows.
func (h *Handler) HandleAddWorkflow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[*AddWorkflowRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	wf, err := h.service.AddWorkflow(ctx, req.Name, req.Category)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, wf)
}

// HandleListWorkflows handles GET /workflows.
func (h *Handler) HandleListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.service.ListWorkflows(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, workflows)
}

// HandleAddType handles POST /document-types.
func (h *Handler) HandleAddType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[*AddTypeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	dt, err := h.service.AddType(ctx, req.Type, req.Description)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, dt)
}

// HandleListTypes handles GET /document-types.
func (h *Handler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, types)
}
