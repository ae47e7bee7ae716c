package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"veridoc/internal/audit"
	"veridoc/internal/identity"
	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/platform/httputil"
	authmw "veridoc/pkg/platform/middleware/auth"
	"veridoc/pkg/requestcontext"
)

// Handler exposes login. A caller self-identifies with a name and role and
// receives a session token, both as a JSON field and as the session cookie.
// Every login is recorded in the audit trail.
type Handler struct {
	issuer   *identity.Issuer
	recorder *audit.Recorder
	ttl      time.Duration
	logger   *slog.Logger
}

func New(issuer *identity.Issuer, recorder *audit.Recorder, ttl time.Duration, logger *slog.Logger) *Handler {
	if ttl <= 0 {
		ttl = identity.DefaultTokenTTL
	}
	return &Handler{issuer: issuer, recorder: recorder, ttl: ttl, logger: logger}
}

// Register mounts auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Get("/auth/roles", h.HandleRoles)
}

// LoginRequest is the HTTP request body for POST /auth/login.
type LoginRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`

	parsedRole domain.Role
}

// Validate normalizes and parses the request.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) < 2 {
		return dErrors.New(dErrors.CodeValidation, "name must be at least 2 characters")
	}
	role, err := domain.ParseRole(strings.TrimSpace(r.Role))
	if err != nil {
		return err
	}
	r.parsedRole = role
	return nil
}

type loginResponse struct {
	Token     string    `json:"token"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[*LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	principal := domain.Principal{
		ID:   domain.NewPrincipalID(),
		Name: req.Name,
		Role: req.parsedRole,
	}
	token, err := h.issuer.Issue(principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session token", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	if _, err := h.recorder.Record(ctx, audit.Entry{
		ActorID:   principal.ID,
		ActorName: principal.Name,
		ActorRole: principal.Role,
		Action:    audit.ActionLogin,
		Entity:    audit.EntityAuth,
		EntityID:  principal.ID.String(),
	}); err != nil {
		httputil.WriteError(w, err)
		return
	}

	expiresAt := requestcontext.Now(ctx).Add(h.ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ID:        principal.ID.String(),
		Name:      principal.Name,
		Role:      principal.Role.String(),
		ExpiresAt: expiresAt,
	})
}

// HandleRoles handles GET /auth/roles, listing the roles a caller may
// assume at login.
func (h *Handler) HandleRoles(w http.ResponseWriter, _ *http.Request) {
	roles := domain.Roles()
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, role.String())
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"roles": out})
}
