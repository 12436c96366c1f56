package management

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"consulnotifier/internal/config"
	"consulnotifier/internal/health"
)

func newTestAPI(t *testing.T, checks map[string]health.Check) *API {
	t.Helper()

	checker := health.NewChecker()
	for name, check := range checks {
		checker.RegisterCheck(name, check)
	}

	cfg := &config.Management{Enabled: true, Host: "127.0.0.1", Port: 9090}
	return NewAPI(cfg, checker, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthzEndpoint(t *testing.T) {
	api := newTestAPI(t, map[string]health.Check{
		"docker": func(ctx context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", body.Status)
	}
}

func TestStatusEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if _, ok := body["uptime"]; !ok {
		t.Error("Expected uptime in status body")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
