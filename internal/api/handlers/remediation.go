package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/threatwatch/internal/api/dto"
	"github.com/pratik-mahalle/threatwatch/internal/api/middleware"
	"github.com/pratik-mahalle/threatwatch/internal/domain/remediation"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
)

// RemediationHandler exposes remediation tasks and actions
type RemediationHandler struct {
	service   remediation.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewRemediationHandler creates a new remediation handler
func NewRemediationHandler(service remediation.Service, log *logger.Logger, val *validator.Validator) *RemediationHandler {
	return &RemediationHandler{service: service, logger: log, validator: val}
}

// ListTasks returns the newest alerts as remediation tasks
// @Summary List remediation tasks
// @Tags Remediation
// @Produce json
// @Success 200 {array} remediation.Task
// @Router /remediations [get]
func (h *RemediationHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if tasks == nil {
		tasks = []remediation.Task{}
	}
	utils.WriteSuccess(w, http.StatusOK, tasks)
}

// PerformAction applies Approve, Retry, Rollback or Stop to an alert
// @Summary Perform remediation action
// @Tags Remediation
// @Accept json
// @Produce json
// @Param id path int true "Alert ID"
// @Param request body dto.ActionRequest true "Action"
// @Success 200 {object} remediation.ActionResult
// @Failure 400 {object} utils.ErrorResponse "Unknown action"
// @Failure 404 {object} utils.ErrorResponse "Alert not found"
// @Router /remediations/{id}/action [post]
func (h *RemediationHandler) PerformAction(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.ActionRequest
	if appErr := decodeJSON(w, r, &req, h.validator); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	result, err := h.service.PerformAction(r.Context(), id, req.Action)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	middleware.AddLogField(w, "alert_id", id)
	middleware.AddLogField(w, "action", req.Action)
	utils.WriteSuccess(w, http.StatusOK, result)
}

// ExecutePlaybook records a simulated critical incident
// @Summary Run a simulated playbook
// @Tags Remediation
// @Produce json
// @Success 200 {object} remediation.ExecuteResult
// @Router /remediations/execute [post]
func (h *RemediationHandler) ExecutePlaybook(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ExecutePlaybook(r.Context())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}
