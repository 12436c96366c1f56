package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Check represents a health check function
type Check func(ctx context.Context) error

// CheckResult is the outcome of one check
type CheckResult struct {
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Checker manages health checks
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewChecker creates a new health checker
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
	}
}

// RegisterCheck registers a health check
func (c *Checker) RegisterCheck(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// CheckHealth runs all health checks concurrently
func (c *Checker) CheckHealth(ctx context.Context) map[string]CheckResult {
	c.mu.RLock()
	checks := make(map[string]Check, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var resultsMu sync.Mutex

	for name, check := range checks {
		wg.Add(1)
		go func(name string, check Check) {
			defer wg.Done()

			start := time.Now()
			err := check(ctx)

			result := CheckResult{
				Status:   StatusHealthy,
				Duration: time.Since(start),
			}
			if err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
			}

			resultsMu.Lock()
			results[name] = result
			resultsMu.Unlock()
		}(name, check)
	}

	wg.Wait()
	return results
}

// Handler returns an HTTP handler reporting overall health as JSON.
// Any unhealthy check yields a 503.
func (c *Checker) Handler(timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		results := c.CheckHealth(ctx)

		overall := StatusHealthy
		for _, result := range results {
			if result.Status != StatusHealthy {
				overall = StatusUnhealthy
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if overall != StatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": overall,
			"checks": results,
		})
	})
}
