package middleware

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"time"

	"notes-server/internal/logger"

	"go.uber.org/zap"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working behind the logger.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// userIDSlot lets the auth middleware, which runs further down the chain,
// report the resolved user back to the logger.
type userIDSlot struct {
	userID string
}

type slotKey struct{}

func LoggerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			slot := &userIDSlot{}
			r = r.WithContext(context.WithValue(r.Context(), slotKey{}, slot))

			next.ServeHTTP(rw, r)

			userID := slot.userID
			if userID == "" {
				userID = "anonymous"
			}

			logger.Log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", rw.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("user_id", userID),
			)
		})
	}
}

func recordUserID(r *http.Request, userID string) {
	if slot, ok := r.Context().Value(slotKey{}).(*userIDSlot); ok {
		slot.userID = userID
	}
}
