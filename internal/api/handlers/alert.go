package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/threatwatch/internal/api/middleware"
	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
)

// AlertHandler serves stored alerts
type AlertHandler struct {
	service alert.Service
	logger  *logger.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service alert.Service, log *logger.Logger) *AlertHandler {
	return &AlertHandler{service: service, logger: log}
}

// List returns the caller's newest alerts
// @Summary List alerts
// @Description Newest first, limited to alerts the caller submitted.
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum alerts (default 50)"
// @Success 200 {array} alert.Alert
// @Router /alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseLimit(r, utils.DefaultAlertLimit)

	alerts, err := h.service.ListRecent(r.Context(), middleware.OwnerFromRequest(r), limit)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*alert.Alert{}
	}

	utils.WriteSuccess(w, http.StatusOK, alerts)
}

// Get returns one alert
// @Summary Get alert by ID
// @Tags Alerts
// @Produce json
// @Param id path int true "Alert ID"
// @Success 200 {object} alert.Alert
// @Failure 404 {object} utils.ErrorResponse "Alert not found"
// @Router /alerts/{id} [get]
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}

// Summary returns global alert counts
// @Summary Alert summary
// @Tags Alerts
// @Produce json
// @Success 200 {object} alert.Overview
// @Router /alerts/summary [get]
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Summary(r.Context())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, overview)
}

// Logs returns recent alerts rendered as security events
// @Summary Security event feed
// @Tags Alerts
// @Produce json
// @Param limit query int false "Maximum events (default 100)"
// @Success 200 {array} alert.SecurityEvent
// @Router /logs [get]
func (h *AlertHandler) Logs(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.SecurityEvents(r.Context(), utils.ParseLimit(r, utils.DefaultEventLimit))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if events == nil {
		events = []alert.SecurityEvent{}
	}
	utils.WriteSuccess(w, http.StatusOK, events)
}
