// Package httptransport assembles the HTTP surface: middleware chain, feature
// handlers, and operational endpoints. Handlers stay in their feature
// packages; this package only mounts them.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"veridoc/pkg/platform/httputil"
	"veridoc/pkg/platform/middleware/auth"
	"veridoc/pkg/platform/middleware/requestid"
	"veridoc/pkg/platform/middleware/requesttime"
)

// Registrar mounts a feature's endpoints on the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the middleware chain and all feature handlers. The
// verifier resolves session tokens to principals; resolution failures leave
// the request anonymous, so read paths keep working for public documents.
func NewRouter(verifier auth.Verifier, logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(auth.Principal(verifier, logger))

	for _, h := range handlers {
		h.Register(r)
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
