package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"veridoc/internal/audit"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/platform/httputil"
	"veridoc/pkg/requestcontext"
)

// Handler exposes the audit trail read path. The trail itself is written by
// the services that own each mutation; there is no write endpoint.
type Handler struct {
	recorder *audit.Recorder
	logger   *slog.Logger
}

func New(recorder *audit.Recorder, logger *slog.Logger) *Handler {
	return &Handler{recorder: recorder, logger: logger}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit", h.HandleList)
}

// HandleList handles GET /audit?limit=N. The trail names actors and
// documents, so anonymous callers may not read it.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if requestcontext.Principal(r.Context()) == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	limit := 200
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.recorder.List(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit trail", "error", err)
		httputil.WriteError(w, err)
		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, fromEntry(e))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type entryResponse struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	ActorID   string         `json:"actor_id,omitempty"`
	ActorName string         `json:"actor_name,omitempty"`
	ActorRole string         `json:"actor_role,omitempty"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

func fromEntry(e audit.Entry) entryResponse {
	resp := entryResponse{
		ID:        e.ID.String(),
		Timestamp: e.Timestamp,
		ActorName: e.ActorName,
		ActorRole: string(e.ActorRole),
		Action:    e.Action,
		Entity:    string(e.Entity),
		EntityID:  e.EntityID,
		Details:   e.Details,
	}
	if !e.ActorID.IsNil() {
		resp.ActorID = e.ActorID.String()
	}
	return resp
}
