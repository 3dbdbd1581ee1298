package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/threatwatch/internal/api/dto"
	"github.com/pratik-mahalle/threatwatch/internal/api/middleware"
	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
)

// ThreatHandler accepts traffic records for classification
type ThreatHandler struct {
	recorder alert.Recorder
	logger   *logger.Logger
}

// NewThreatHandler creates a new threat handler
func NewThreatHandler(recorder alert.Recorder, log *logger.Logger) *ThreatHandler {
	return &ThreatHandler{recorder: recorder, logger: log}
}

// Analyze classifies one flow and records it as an alert
// @Summary Analyze a traffic flow
// @Description Classify a flow record; qualifying threats trigger notifications in the background
// @Tags Threats
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Flow record"
// @Success 200 {object} alert.AlertSummary
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 503 {object} utils.ErrorResponse "Model unavailable"
// @Router /analyze [post]
func (h *ThreatHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.InvalidInput("Invalid feature record", err.Error()))
		return
	}

	summary, err := h.recorder.ClassifyAndRecord(r.Context(), req.FeatureRecord, middleware.OwnerFromRequest(r))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	middleware.AddLogField(w, "alert_id", summary.ID)
	utils.WriteSuccess(w, http.StatusOK, summary)
}
