package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// CheckoutHandler drives the paid purchase flow.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

type createSessionRequest struct {
	ModuleIDs []string `json:"moduleIds" binding:"required"`
}

// CreateSession handles POST /v1/checkout/session
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	userID := c.GetString("user_id")
	session, err := h.checkoutService.CreateSession(c.Request.Context(), userID, req.ModuleIDs)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptyCart):
			utils.Error(c, http.StatusBadRequest, "EMPTY_CART", "Cart contains no modules")
		case errors.Is(err, utils.ErrModuleNotFound):
			utils.Error(c, http.StatusNotFound, "MODULE_NOT_FOUND", "Module not found")
		case errors.Is(err, utils.ErrDependencyNotMet):
			utils.Error(c, http.StatusConflict, "DEPENDENCY_NOT_MET", err.Error())
		case errors.Is(err, utils.ErrAlreadyInstalled):
			utils.Error(c, http.StatusConflict, "ALREADY_INSTALLED", err.Error())
		case errors.Is(err, utils.ErrStoreUnavailable):
			utils.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Entitlement store unavailable")
		default:
			utils.Error(c, http.StatusBadGateway, "PAYMENT_PROVIDER_ERROR", "Failed to create checkout session")
		}
		return
	}

	utils.Success(c, http.StatusCreated, "Checkout session created", session)
}

// GetSession handles GET /v1/checkout/session/:sessionId
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	userID := c.GetString("user_id")
	session, err := h.checkoutService.GetSession(c.Request.Context(), userID, c.Param("sessionId"))
	if err != nil {
		utils.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Checkout session not found")
		return
	}

	utils.Success(c, http.StatusOK, "Checkout session retrieved", session)
}
