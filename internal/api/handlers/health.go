package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
)

// Check probes one dependency
type Check func(ctx context.Context) error

// HealthHandler handles health check requests
type HealthHandler struct {
	checks map[string]Check
	logger *logger.Logger
}

// NewHealthHandler creates a health handler. Each named check must pass for
// the service to be ready.
func NewHealthHandler(checks map[string]Check, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ready"}
	failed := false
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WithError(err).WithFields(map[string]interface{}{"check": name}).Warn("Readiness check failed")
			status[name] = "unavailable"
			failed = true
			continue
		}
		status[name] = "ok"
	}

	if failed {
		status["status"] = "not ready"
		utils.WriteError(w, errors.ServiceUnavailable("Dependency check failed").WithDetails(status))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, status)
}
