// Package requestid assigns a correlation ID to every request so log lines
// and audit entries from one operation can be tied together.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"veridoc/pkg/requestcontext"
)

// Header is the inbound/outbound correlation header.
const Header = "X-Request-Id"

// Middleware reuses an inbound request ID when present, otherwise generates
// one, and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
