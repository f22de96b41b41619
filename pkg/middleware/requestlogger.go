package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Pronoysaha90/AuraAntique/pkg/logger"
)

// SessionIDFunc resolves the shopper's session ID for a request, or "".
type SessionIDFunc func(r *http.Request) string

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, session_id, trace_id and span_id, and stores it in the
// context for logger.FromContext.
//
// Mount it after RequestLogging (correlation ID) and Tracing (span context).
func RequestLogger(base *slog.Logger, sessionID SessionIDFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sid := logger.SessionIDFromContext(ctx)
			if sid == "" && sessionID != nil {
				sid = sessionID(r)
			}
			if sid != "" {
				ctx = logger.WithSessionID(ctx, sid)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
