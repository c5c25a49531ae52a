package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/keepnotes/internal/logging"
	"github.com/dmitrijs2005/keepnotes/internal/server/auth"
	"github.com/dmitrijs2005/keepnotes/internal/server/models"
	"github.com/rs/xid"
)

type ctxKey string

const userKey ctxKey = "user"

const detailInvalidCredentials = "Could not validate credentials"

// userFromContext returns the authenticated user installed by requireAuth.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// requireAuth validates the bearer token and resolves its subject to a
// user. Any failure, from a missing header to an expired signature, yields
// the same 401 so the response does not leak which check failed.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeUnauthorized(w, detailInvalidCredentials)
			return
		}

		email, err := auth.GetSubjectFromToken(token, h.jwtSecret)
		if err != nil {
			writeUnauthorized(w, detailInvalidCredentials)
			return
		}

		user, err := h.users.GetByEmail(r.Context(), email)
		if err != nil {
			writeUnauthorized(w, detailInvalidCredentials)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code for the
// request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// requestLogger logs every request with a generated request id, method,
// path, status and duration.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := xid.New().String()

			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			logger.Info(r.Context(), "request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"duration", time.Since(start),
			)
		})
	}
}
