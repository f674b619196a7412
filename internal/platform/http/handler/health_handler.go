// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analytics/internal/api"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// HealthHandler serves /healthz.
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthHandler creates a handler running checks, keyed by dependency name, on
// every GET.
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Health answers 200 when every check passes and 503 otherwise. HEAD and OPTIONS
// skip the checks.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	resp := api.HealthResponse{Status: "ok"}
	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := h.checks[name](ctx); err != nil {
				slog.Warn("health check failed", "dependency", name, "error", err)
				results[name] = err.Error()
				resp.Status = "degraded"
				continue
			}
			results[name] = "ok"
		}
		resp.Checks = &results
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
