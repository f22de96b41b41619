package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Pronoysaha90/AuraAntique/internal/session"
	"github.com/Pronoysaha90/AuraAntique/pkg/logger"
)

// SessionCookie carries the shopper's session ID.
const SessionCookie = "aura_session"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const sessionKey contextKey = "session"

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Secure bool
	MaxAge int // seconds; 0 leaves it a browser-session cookie
}

// Sessions resolves the shopper's session from the cookie and stores it in
// the request context. A missing, malformed or expired ID gets a fresh session
// and a new cookie, but only after passing createLimit; requests carrying a
// live session skip it. The request-scoped logger is rebuilt so it carries
// the resolved session ID.
func Sessions(
	m *session.Manager,
	cfg SessionConfig,
	createLimit func(http.Handler) http.Handler,
	base *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		serve := func(w http.ResponseWriter, r *http.Request, sess *session.Session) {
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			ctx = logger.WithSessionID(ctx, sess.ID)
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		create := createLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   cfg.MaxAge,
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			serve(w, r, sess)
		}))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := m.Lookup(sessionCookieID(r)); ok {
				serve(w, r, sess)
				return
			}
			create.ServeHTTP(w, r)
		})
	}
}

// sessionCookieID returns the raw session cookie value, or "".
func sessionCookieID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func sessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok && s != nil
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
