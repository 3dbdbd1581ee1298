package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/threatwatch/internal/api/middleware"
	"github.com/pratik-mahalle/threatwatch/internal/domain/stats"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
)

// StatsHandler serves dashboard statistics
type StatsHandler struct {
	service stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get returns the caller's dashboard stats
// @Summary Dashboard stats
// @Tags Stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} stats.Stats
// @Router /stats [get]
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Summarize(r.Context(), middleware.OwnerFromRequest(r))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, s)
}
