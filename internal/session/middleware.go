package session

import (
	"context"
	"net/http"

	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// HeaderName carries the session id in both directions
const HeaderName = "X-Session-Id"

type contextKey struct{}

// NewContext returns ctx carrying s
func NewContext(ctx context.Context, s *Session) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, s)
	return logger.WithSessionID(ctx, s.ID)
}

// FromContext returns the session attached by Middleware
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// Middleware resolves the session named by the request header, starting a
// new one when the header is missing or stale. Only the session entry point
// is mounted behind it; every other route uses Require. A new session is seeded
// from the request query. The id is echoed in the response header.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, created := m.GetOrCreate(r.Context(), r.Header.Get(HeaderName), r.URL.RawQuery)

		w.Header().Set(HeaderName, s.ID)
		if created {
			w.Header().Set("X-Session-Created", "true")
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}

// Require resolves the session named by the request header and answers 404
// when the header is missing or the session has ended. It never creates one.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderName)
		if id == "" {
			httpx.RespondError(w, http.StatusNotFound, ErrSessionNotFound.Error())
			return
		}

		s, err := m.Get(r.Context(), id)
		if err != nil {
			logger.Debug(r.Context()).Str("session_id", id).Msg("Unknown session")
			httpx.RespondError(w, http.StatusNotFound, err.Error())
			return
		}

		w.Header().Set(HeaderName, s.ID)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}
