package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// knownRoutes are recorded verbatim; anything else is collapsed so unknown
// paths cannot blow up label cardinality.
var knownRoutes = map[string]bool{
	"/":            true,
	"/health":      true,
	"/metrics":     true,
	"/v1/score/gv": true,
}

// normalizePath maps a request path onto a bounded set of metric labels.
func normalizePath(path string) string {
	if knownRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/v1/score/") {
		return "/v1/score/{scorer}"
	}
	return "/{other}"
}

// metricsResponseWriter wraps http.ResponseWriter to capture status code and response size.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
}

// WriteHeader captures the status code before writing it.
func (mrw *metricsResponseWriter) WriteHeader(code int) {
	if mrw.wroteHeader {
		return
	}
	mrw.statusCode = code
	mrw.wroteHeader = true
	mrw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size and writes the data.
func (mrw *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := mrw.ResponseWriter.Write(b)
	mrw.size += int64(n)
	return n, err
}

// HTTPMetrics is a middleware that records HTTP request metrics.
// Liveness checks (/health) and scrapes (/metrics) are not recorded.
func HTTPMetrics(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			mrw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(mrw, r)

			requestSize := r.ContentLength
			if requestSize < 0 {
				requestSize = 0
			}

			metrics.ObserveHTTPRequest(
				r.Method,
				normalizePath(r.URL.Path),
				strconv.Itoa(mrw.statusCode),
				time.Since(start).Seconds(),
				requestSize,
				mrw.size,
			)
		})
	}
}
