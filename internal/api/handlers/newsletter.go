package handlers

import (
	"context"
	"net/http"

	"github.com/pratik-mahalle/threatwatch/internal/api/dto"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
)

// Subscriber queues a newsletter confirmation
type Subscriber interface {
	Subscribe(ctx context.Context, email string)
}

// NewsletterHandler handles newsletter signups
type NewsletterHandler struct {
	subscriber Subscriber
	logger     *logger.Logger
	validator  *validator.Validator
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(subscriber Subscriber, log *logger.Logger, val *validator.Validator) *NewsletterHandler {
	return &NewsletterHandler{subscriber: subscriber, logger: log, validator: val}
}

// Subscribe signs an address up and mails a confirmation in the background
// @Summary Subscribe to the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Address"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse "Validation error"
// @Router /subscribe [post]
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscribeRequest
	if appErr := decodeJSON(w, r, &req, h.validator); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	h.subscriber.Subscribe(r.Context(), req.Email)
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Subscription successful", nil)
}
