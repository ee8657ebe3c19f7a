// Package middleware provides HTTP middleware components for the scoring server.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// errorCodeKey is the context key for the error code holder.
type errorCodeKey struct{}

// errorCodeHolder lets handlers report an error code back to Logging, which
// only sees the request context it created.
type errorCodeHolder struct {
	code string
}

// SetErrorCode records an error code for the current request so Logging can
// include it. It returns ctx unchanged when Logging is not in the chain.
func SetErrorCode(ctx context.Context, code string) context.Context {
	if h, ok := ctx.Value(errorCodeKey{}).(*errorCodeHolder); ok {
		h.code = code
		return ctx
	}
	return context.WithValue(ctx, errorCodeKey{}, &errorCodeHolder{code: code})
}

// GetErrorCode retrieves the error code from context. Returns empty string if not present.
func GetErrorCode(ctx context.Context) string {
	if h, ok := ctx.Value(errorCodeKey{}).(*errorCodeHolder); ok {
		return h.code
	}
	return ""
}

// responseWriter wraps http.ResponseWriter to capture status code and response size.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int
	wroteHeader bool
}

// WriteHeader captures the status code before writing it.
// Only the first call sets the status code.
func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size and writes the data.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// NewLogger creates a structured logger for env: JSON at info level in
// production, human-readable text at debug level everywhere else.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

// Logging is a middleware that logs HTTP requests with structured fields:
// method, path, status, latency (ms), request ID, response size, and
// error_code for error responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newResponseWriter(w)
			holder := &errorCodeHolder{}
			ctx := context.WithValue(r.Context(), errorCodeKey{}, holder)

			next.ServeHTTP(rw, r.WithContext(ctx))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.statusCode),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()),
				slog.Int("size", rw.size),
			}

			if requestID := GetRequestID(r.Context()); requestID != "" {
				attrs = append(attrs, slog.String("request_id", requestID))
			}

			if rw.statusCode >= 400 && holder.code != "" {
				attrs = append(attrs, slog.String("error_code", holder.code))
			}

			switch {
			case rw.statusCode >= 500:
				logger.LogAttrs(r.Context(), slog.LevelError, "request completed", attrs...)
			case rw.statusCode >= 400:
				logger.LogAttrs(r.Context(), slog.LevelWarn, "request completed", attrs...)
			default:
				logger.LogAttrs(r.Context(), slog.LevelInfo, "request completed", attrs...)
			}
		})
	}
}
