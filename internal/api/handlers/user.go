package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/threatwatch/internal/api/dto"
	"github.com/pratik-mahalle/threatwatch/internal/api/middleware"
	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
)

// UserHandler manages the caller's notification preferences
type UserHandler struct {
	service   user.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(service user.Service, log *logger.Logger, val *validator.Validator) *UserHandler {
	return &UserHandler{service: service, logger: log, validator: val}
}

// GetPreferences returns the caller's notification switches
// @Summary Get notification preferences
// @Tags Users
// @Produce json
// @Success 200 {object} dto.PreferencesDTO
// @Security BearerAuth
// @Router /users/me/preferences [get]
func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(u).Preferences)
}

// UpdatePreferences replaces the caller's notification switches
// @Summary Update notification preferences
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} dto.PreferencesDTO
// @Failure 400 {object} utils.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /users/me/preferences [put]
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.UpdatePreferencesRequest
	if appErr := decodeJSON(w, r, &req, h.validator); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}
	if req.SMSAlerts && req.Phone == "" {
		utils.WriteError(w, errors.ValidationError("Validation failed", []validator.ValidationError{{
			Field:   "Phone",
			Tag:     "required_with",
			Message: "Phone is required when sms_alerts is enabled",
		}}))
		return
	}

	u, err := h.service.UpdatePreferences(r.Context(), userID, req.Phone, req.ToPreferences())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(u).Preferences)
}
