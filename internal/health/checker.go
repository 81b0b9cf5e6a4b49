// Package health runs periodic component checks and reports an overall status.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type State string

const (
	StateHealthy   State = "healthy"
	StateUnhealthy State = "unhealthy"
	StateWarning   State = "warning"
	StateUnknown   State = "unknown"
)

// Check probes one component.
type Check interface {
	Name() string
	Check(ctx context.Context) ComponentHealth
}

type Config struct {
	CheckInterval    time.Duration `json:"check_interval"`
	Timeout          time.Duration `json:"timeout"`
	MaxLatency       time.Duration `json:"max_latency"`
	DetailedResponse bool          `json:"detailed_response"`
	Version          string        `json:"version"`
}

type ComponentHealth struct {
	Name        string                 `json:"name"`
	Status      State                  `json:"status"`
	Message     string                 `json:"message"`
	LastChecked time.Time              `json:"last_checked"`
	Duration    time.Duration          `json:"duration"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

type Status struct {
	Overall     State                      `json:"overall"`
	Timestamp   time.Time                  `json:"timestamp"`
	Version     string                     `json:"version"`
	Uptime      time.Duration              `json:"uptime"`
	Components  map[string]ComponentHealth `json:"components"`
	LastChecked time.Time                  `json:"last_checked"`
	CheckCount  int64                      `json:"check_count"`
}

type Checker struct {
	config   Config
	logger   *logrus.Logger
	checks   map[string]Check
	status   *Status
	started  time.Time
	mutex    sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewChecker(config Config, logger *logrus.Logger) *Checker {
	if config.CheckInterval == 0 {
		config.CheckInterval = 30 * time.Second
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxLatency == 0 {
		config.MaxLatency = time.Second
	}
	if config.Version == "" {
		config.Version = "1.0.0"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	now := time.Now()
	return &Checker{
		config:  config,
		logger:  logger,
		checks:  make(map[string]Check),
		started: now,
		status: &Status{
			Overall:    StateUnknown,
			Timestamp:  now,
			Version:    config.Version,
			Components: make(map[string]ComponentHealth),
		},
		stopChan: make(chan struct{}),
	}
}

func (h *Checker) Register(check Check) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.checks[check.Name()] = check
}

// Start runs the checks once and then on every interval until Stop.
func (h *Checker) Start() {
	h.Run(context.Background())

	ticker := time.NewTicker(h.config.CheckInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.Run(context.Background())
			case <-h.stopChan:
				return
			}
		}
	}()

	h.logger.Info("Health checker started")
}

func (h *Checker) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
		h.logger.Info("Health checker stopped")
	})
}

// Run executes every registered check in parallel and stores the result.
func (h *Checker) Run(ctx context.Context) *Status {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.mutex.RLock()
	checks := make([]Check, 0, len(h.checks))
	for _, c := range h.checks {
		checks = append(checks, c)
	}
	h.mutex.RUnlock()

	startTime := time.Now()
	results := make(chan ComponentHealth, len(checks))
	var wg sync.WaitGroup
	for _, check := range checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()
			results <- h.timed(ctx, c)
		}(check)
	}
	wg.Wait()
	close(results)

	components := make(map[string]ComponentHealth, len(checks))
	overall := StateHealthy
	for result := range results {
		components[result.Name] = result
		switch result.Status {
		case StateUnhealthy:
			overall = StateUnhealthy
		case StateWarning:
			if overall == StateHealthy {
				overall = StateWarning
			}
		}
	}

	h.mutex.Lock()
	h.status = &Status{
		Overall:     overall,
		Timestamp:   startTime,
		Version:     h.config.Version,
		Uptime:      time.Since(h.started),
		Components:  components,
		LastChecked: time.Now(),
		CheckCount:  h.status.CheckCount + 1,
	}
	status := h.copyStatus()
	h.mutex.Unlock()

	if overall != StateHealthy {
		h.logger.WithFields(logrus.Fields{
			"overall_status":       overall,
			"unhealthy_components": unhealthy(components),
		}).Warn("Health check completed with issues")
	} else {
		h.logger.Debug("Health check completed successfully")
	}
	return status
}

func (h *Checker) timed(ctx context.Context, c Check) ComponentHealth {
	start := time.Now()
	result := c.Check(ctx)
	result.Name = c.Name()
	result.Duration = time.Since(start)
	result.LastChecked = time.Now()
	if result.Status == StateHealthy && result.Duration > h.config.MaxLatency {
		result.Status = StateWarning
		result.Message = "slow response"
	}
	return result
}

func unhealthy(components map[string]ComponentHealth) []string {
	var names []string
	for name, c := range components {
		if c.Status == StateUnhealthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Status returns a copy of the latest result.
func (h *Checker) Status() *Status {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.copyStatus()
}

func (h *Checker) copyStatus() *Status {
	status := *h.status
	status.Components = make(map[string]ComponentHealth, len(h.status.Components))
	for k, v := range h.status.Components {
		status.Components[k] = v
	}
	return &status
}

// HTTPStatus maps a state onto a response code.
func HTTPStatus(s State) int {
	if s == StateUnhealthy {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

func (h *Checker) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Run(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(HTTPStatus(status.Overall))

		var response interface{}
		if h.config.DetailedResponse {
			response = status
		} else {
			response = map[string]interface{}{
				"status":    status.Overall,
				"timestamp": status.Timestamp,
				"version":   status.Version,
			}
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.WithError(err).Warn("Failed to write health response")
		}
	}
}
