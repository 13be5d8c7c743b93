package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/response"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

// SystemHandler serves the health check.
type SystemHandler struct {
	checks    map[string]Pinger
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a SystemHandler probing each named dependency.
func NewSystemHandler(checks map[string]Pinger, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		checks:    checks,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthReport struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	GoVersion    string            `json:"go_version"`
	Goroutines   int               `json:"goroutines"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health godoc
// GET /health
// Returns "ok" when every dependency answers, "degraded" (503) otherwise.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	report := healthReport{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		report.Dependencies = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			report.Dependencies[name] = "down"
			report.Status = "degraded"
			continue
		}
		report.Dependencies[name] = "up"
	}

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, report)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
