package middleware

import (
	"net/http"

	"expensehub/pkg/logger"

	"github.com/google/uuid"
)

// RequestID assigns each request a trace id, reusing the caller's X-Trace-ID
// when present. The id is attached to the context logger and echoed back in
// the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
