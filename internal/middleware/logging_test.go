package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testLogEntry represents a parsed JSON log entry for testing.
type testLogEntry struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Size      int    `json:"size"`
	RequestID string `json:"request_id"`
	ErrorCode string `json:"error_code"`
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func parseEntry(t *testing.T, buf *bytes.Buffer) testLogEntry {
	t.Helper()
	var entry testLogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log entry: %v, log: %s", err, buf.String())
	}
	return entry
}

func TestLogging_BasicFields(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := Logging(newTestLogger(buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/score/gv", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := parseEntry(t, buf)
	if entry.Method != http.MethodPost {
		t.Errorf("expected method POST, got %s", entry.Method)
	}
	if entry.Path != "/v1/score/gv" {
		t.Errorf("expected path /v1/score/gv, got %s", entry.Path)
	}
	if entry.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", entry.Status)
	}
	if entry.Size != len(`{"candidates":[]}`) {
		t.Errorf("expected size %d, got %d", len(`{"candidates":[]}`), entry.Size)
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got %s", entry.Level)
	}
	if entry.Msg != "request completed" {
		t.Errorf("expected msg 'request completed', got %s", entry.Msg)
	}
}

func TestLogging_WithRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := RequestID(Logging(newTestLogger(buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if entry := parseEntry(t, buf); entry.RequestID != "req-123" {
		t.Errorf("expected request_id req-123, got %s", entry.RequestID)
	}
}

func TestLogging_StatusLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      string
		wantLevel string
		wantCode  string
	}{
		{name: "client error with code", status: http.StatusBadRequest, code: "validation_error", wantLevel: "WARN", wantCode: "validation_error"},
		{name: "server error with code", status: http.StatusInternalServerError, code: "internal_error", wantLevel: "ERROR", wantCode: "internal_error"},
		{name: "success ignores code", status: http.StatusOK, code: "validation_error", wantLevel: "INFO", wantCode: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := Logging(newTestLogger(buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				SetErrorCode(r.Context(), tt.code)
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/score/gv", nil))

			entry := parseEntry(t, buf)
			if entry.Level != tt.wantLevel {
				t.Errorf("expected level %s, got %s", tt.wantLevel, entry.Level)
			}
			if entry.ErrorCode != tt.wantCode {
				t.Errorf("expected error_code %q, got %q", tt.wantCode, entry.ErrorCode)
			}
		})
	}
}

func TestLogging_DefaultStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := Logging(newTestLogger(buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if entry := parseEntry(t, buf); entry.Status != http.StatusOK {
		t.Errorf("expected default status 200, got %d", entry.Status)
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		if NewLogger(env) == nil {
			t.Errorf("NewLogger(%q) returned nil", env)
		}
	}
}

func TestSetErrorCode_GetErrorCode(t *testing.T) {
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if code := GetErrorCode(ctx); code != "" {
		t.Errorf("expected empty error code, got %s", code)
	}

	ctx = SetErrorCode(ctx, "bad_request")
	if code := GetErrorCode(ctx); code != "bad_request" {
		t.Errorf("expected bad_request, got %s", code)
	}

	// Overwrites in place once a holder exists
	SetErrorCode(ctx, "internal_error")
	if code := GetErrorCode(ctx); code != "internal_error" {
		t.Errorf("expected internal_error, got %s", code)
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rw.statusCode)
	}
	if n, err := rw.Write([]byte(strings.Repeat("x", 10))); err != nil || n != 10 {
		t.Errorf("unexpected write result: n=%d err=%v", n, err)
	}
	if rw.size != 10 {
		t.Errorf("expected size 10, got %d", rw.size)
	}
}
