// Package health exposes the readiness endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status of one check or of the whole process.
type Status string

const (
	StatusOK   Status = "ok"
	StatusFail Status = "fail"
)

// Result is one named check outcome.
type Result struct {
	Status   Status `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// Report is the full health response body.
type Report struct {
	Status    Status            `json:"status"`
	Checks    map[string]Result `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// Checker runs registered checks and serves the report over HTTP.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
}

// NewChecker creates an empty checker with a per-check timeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Checker{checks: make(map[string]CheckFunc), timeout: timeout}
}

// Register adds a named check.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = fn
}

// Run executes every check. Any failure fails the whole report.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	c.mu.RUnlock()

	report := Report{
		Status:    StatusOK,
		Checks:    make(map[string]Result, len(checks)),
		Timestamp: time.Now().UTC(),
	}
	for name, fn := range checks {
		report.Checks[name] = c.run(ctx, fn)
		if report.Checks[name].Status == StatusFail {
			report.Status = StatusFail
		}
	}
	return report
}

func (c *Checker) run(ctx context.Context, fn CheckFunc) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	res := Result{Status: StatusOK, Duration: time.Since(start).String()}
	if err != nil {
		res.Status = StatusFail
		res.Error = err.Error()
	}
	return res
}

// ServeHTTP returns the report, 503 when anything fails.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := c.Run(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if report.Status != StatusOK {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(report)
}
