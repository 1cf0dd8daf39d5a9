package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	checkoutService *service.CheckoutService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(checkoutService *service.CheckoutService) *WebhookHandler {
	return &WebhookHandler{checkoutService: checkoutService}
}

// HandleStripe handles POST /webhook/stripe
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_PAYLOAD", "Failed to read request body")
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		utils.Error(c, http.StatusBadRequest, "MISSING_SIGNATURE", "Stripe-Signature header is required")
		return
	}

	if err := h.checkoutService.HandleWebhook(c.Request.Context(), payload, sigHeader); err != nil {
		if errors.Is(err, utils.ErrInvalidSignature) {
			log.Warn().Err(err).Msg("Webhook signature verification failed")
			utils.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature verification failed")
			return
		}
		log.Error().Err(err).Msg("Webhook processing failed")
		// Non-2xx makes the provider retry, which is what we want for
		// transient store failures.
		utils.Error(c, http.StatusInternalServerError, "WEBHOOK_ERROR", "Failed to process webhook")
		return
	}

	utils.Success(c, http.StatusOK, "Webhook processed", nil)
}
