// Package auth resolves the caller's principal from a bearer token or the
// session cookie. Resolution is optional by design: anonymous callers are
// legitimate readers of public documents, so enforcement happens in the
// services, not here.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"veridoc/pkg/domain"
	"veridoc/pkg/requestcontext"
)

// CookieName carries the session token for browser clients.
const CookieName = "dm_auth"

// Verifier validates a token and returns the principal it represents.
type Verifier interface {
	Verify(token string) (*domain.Principal, error)
}

// Principal extracts and verifies the caller's token, placing the principal
// into the request context when valid. Invalid or missing tokens leave the
// request anonymous; the warning is logged for security review.
func Principal(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected credential, continuing as anonymous",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	const bearerPrefix = "Bearer "
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix); ok {
		return after
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
