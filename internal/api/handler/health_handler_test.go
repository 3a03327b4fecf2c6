package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newEcho()
	h := NewHealthHandler()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	h.started = start
	h.now = func() time.Time { return start.Add(90 * time.Second) }

	rec := httptest.NewRecorder()
	if err := h.Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["status"] != "healthy" || resp["uptime"] != float64(90) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["timestamp"] != "2026-03-01T09:01:30.000Z" {
		t.Fatalf("unexpected timestamp: %v", resp["timestamp"])
	}
}

func TestHealthHandler_UptimeFromProcessStart(t *testing.T) {
	first := NewHealthHandler()
	time.Sleep(5 * time.Millisecond)
	second := NewHealthHandler()

	if !first.started.Equal(processStart) || !second.started.Equal(processStart) {
		t.Fatalf("expected both handlers to start at %v, got %v and %v", processStart, first.started, second.started)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	e := newEcho()
	h := NewHealthDependenciesHandler(map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	resp := decode(t, rec)
	deps := resp["dependencies"].(map[string]any)
	if resp["status"] != "degraded" || deps["postgres"].(map[string]any)["status"] != "ok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
