package adapthttp

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"accounts/internal/domain"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// authMiddleware is the access guard: it extracts the bearer token,
// verifies it, and injects the resulting claims into the request context.
// A request without a token answers 401; a bad or expired token answers
// 403. No handler behind this middleware runs on a failed check.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, domain.ErrMissingToken)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			writeError(w, domain.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "" when absent or malformed.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// claimsFromContext returns the verified claims stored by authMiddleware.
func claimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	c, ok := ctx.Value(claimsContextKey).(*domain.Claims)
	return c, ok
}

// authorizeOwnership enforces the self-only mutation rule: the verified
// claims must name the target id. It writes the 403 itself and reports
// whether the request may proceed.
func (s *Server) authorizeOwnership(w http.ResponseWriter, ctx context.Context, targetID int64) bool {
	claims, ok := claimsFromContext(ctx)
	if !ok || claims.UserID != targetID {
		writeError(w, domain.ErrForbidden)
		return false
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs method, path, status and duration for every request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
