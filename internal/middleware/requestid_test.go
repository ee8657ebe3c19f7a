package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generates uuid when absent", incoming: ""},
		{name: "reuses incoming header", incoming: "batch-2026-10-17-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/score/gv", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if captured == "" {
				t.Fatal("expected request ID in context")
			}
			if got := rr.Header().Get(RequestIDHeader); got != captured {
				t.Errorf("response header %q does not match context %q", got, captured)
			}

			if tt.incoming != "" {
				if captured != tt.incoming {
					t.Errorf("expected %q, got %q", tt.incoming, captured)
				}
				return
			}
			if _, err := uuid.Parse(captured); err != nil {
				t.Errorf("generated ID %q is not a UUID: %v", captured, err)
			}
		})
	}
}

func TestGetRequestID_EmptyContextReturnsEmptyString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("expected empty string, got %q", id)
	}
}
