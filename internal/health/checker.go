package health

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether one dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Checker runs the registered dependency checks.
type Checker struct {
	mu      sync.RWMutex
	names   []string
	checks  map[string]CheckFunc
	started time.Time
	logger  *logrus.Logger
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

func NewChecker(logger *logrus.Logger) *Checker {
	return &Checker{
		checks:  make(map[string]CheckFunc),
		started: time.Now(),
		logger:  logger,
	}
}

// Register adds a check. Registering a name twice replaces the check.
func (h *Checker) Register(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.checks[name]; !exists {
		h.names = append(h.names, name)
	}
	h.checks[name] = check
}

// CheckAll runs every check concurrently and reports them in
// registration order.
func (h *Checker) CheckAll(ctx context.Context) OverallHealth {
	h.mu.RLock()
	names := append([]string(nil), h.names...)
	checks := make([]CheckFunc, len(names))
	for i, name := range names {
		checks[i] = h.checks[name]
	}
	h.mu.RUnlock()

	results := make([]ServiceHealth, len(names))
	var wg sync.WaitGroup
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = h.check(ctx, names[i], checks[i])
		}(i)
	}
	wg.Wait()

	overall := StatusHealthy
	for _, r := range results {
		if r.Status != StatusHealthy {
			overall = StatusUnhealthy
			break
		}
	}

	return OverallHealth{
		Status:   overall,
		Services: results,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}
}

func (h *Checker) check(ctx context.Context, name string, check CheckFunc) ServiceHealth {
	start := time.Now()
	err := check(ctx)
	responseTime := int(time.Since(start).Milliseconds())

	status := StatusHealthy
	errorMsg := ""
	if err != nil {
		status = StatusUnhealthy
		errorMsg = err.Error()
		h.logger.WithError(err).WithField("service", name).Error("Health check failed")
	}

	return ServiceHealth{
		Name:         name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}
