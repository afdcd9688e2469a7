package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Check tests one dependency.
type Check func(ctx context.Context) error

// HealthHandler serves /healthz. A failing check named in required turns the
// response into a 503; others are only reported.
type HealthHandler struct {
	checks   map[string]Check
	required map[string]bool
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checks: map[string]Check{}, required: map[string]bool{}}
}

// Register adds a named check.
func (h *HealthHandler) Register(name string, check Check, required bool) *HealthHandler {
	h.checks[name] = check
	h.required[name] = required
	return h
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			zap.L().Warn("health check failed", zap.String("check", name), zap.Error(err))
			results[name] = "down"
			if h.required[name] {
				status = http.StatusServiceUnavailable
			}
			continue
		}
		results[name] = "up"
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"status":  http.StatusText(status),
		"checks":  results,
	})
}
