// Package middleware holds the HTTP access log middleware
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/skillhub/backend/internal/middlewares"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerMiddleware writes one access log entry per request.
// 5xx responses are logged at error level, 4xx at warn, swagger assets at debug.
func LoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			if ce := logger.Check(accessLevel(r.URL.Path, rec.status), "HTTP request"); ce != nil {
				ce.Write(
					zap.String("request_id", middlewares.GetRequestID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rec.status),
					zap.Int("bytes", rec.bytes),
					zap.Duration("duration", time.Since(start)),
					zap.String("ip", r.RemoteAddr),
				)
			}
		})
	}
}

func accessLevel(path string, status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	case strings.HasPrefix(path, "/swagger/"):
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// statusRecorder captures the status code and body size written by the handler
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}
