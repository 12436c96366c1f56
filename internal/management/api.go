package management

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"consulnotifier/internal/config"
	"consulnotifier/internal/health"
	"consulnotifier/internal/metrics"
)

// API serves the notifier's diagnostics endpoints: /healthz, /status
// and /metrics
type API struct {
	config    *config.Management
	logger    *slog.Logger
	server    *http.Server
	mux       *http.ServeMux
	checker   *health.Checker
	startTime time.Time
}

// NewAPI creates a management API around the given health checker
func NewAPI(cfg *config.Management, checker *health.Checker, logger *slog.Logger) *API {
	api := &API{
		config:    cfg,
		logger:    logger.With("component", "management-api"),
		mux:       http.NewServeMux(),
		checker:   checker,
		startTime: time.Now(),
	}

	api.setupRoutes()

	return api
}

// setupRoutes wires the diagnostic endpoints
func (api *API) setupRoutes() {
	api.mux.Handle("/healthz", api.checker.Handler(5*time.Second))
	api.mux.Handle("/metrics", metrics.Handler())
	api.mux.HandleFunc("/status", api.handleStatus)
}

// handleStatus reports process uptime
func (api *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"uptime":  time.Since(api.startTime).String(),
		"started": api.startTime.Format(time.RFC3339),
	})
}

// Start starts the management server in the background
func (api *API) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", api.config.Host, api.config.Port)
	api.server = &http.Server{
		Addr:         addr,
		Handler:      api.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	api.logger.Info("starting management server", "addr", addr)

	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			api.logger.Error("management server failed", "error", err)
		}
	}()

	return nil
}

// Stop shuts the management server down gracefully
func (api *API) Stop(ctx context.Context) error {
	if api.server == nil {
		return nil
	}
	return api.server.Shutdown(ctx)
}
