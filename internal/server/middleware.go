package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"aievents/internal/logger"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// requestIDFrom returns the request id stored on the context, or "".
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID assigns each request a uuid, stores it on the context, and
// logs the request once it completes.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		s.log.Info("request handled", logger.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"elapsed":    time.Since(start).String(),
		})
	})
}
