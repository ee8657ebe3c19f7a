package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}
	if got := len(m.Collectors()); got != 4 {
		t.Errorf("expected 4 collectors, got %d", got)
	}
}

func TestMetrics_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := NewMetrics()
		if err := m.Register(reg); err != nil {
			t.Fatalf("Register() returned error: %v", err)
		}

		m.ObserveHTTPRequest("POST", "/v1/score/gv", "200", 0.01, 512, 1024)

		families, err := reg.Gather()
		if err != nil {
			t.Fatalf("Gather() returned error: %v", err)
		}
		if len(families) != 4 {
			t.Errorf("expected 4 metric families, got %d", len(families))
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		if err := NewMetrics().Register(reg); err != nil {
			t.Fatalf("first Register() returned error: %v", err)
		}
		if err := NewMetrics().Register(reg); err == nil {
			t.Error("second Register() should have returned an error")
		}
	})
}
