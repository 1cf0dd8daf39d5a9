package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// AccessHandler serves feature access checks.
type AccessHandler struct {
	accessService *service.AccessService
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(accessService *service.AccessService) *AccessHandler {
	return &AccessHandler{accessService: accessService}
}

// CheckFeature handles GET /v1/access/:featureKey
func (h *AccessHandler) CheckFeature(c *gin.Context) {
	userID := c.GetString("user_id")
	featureKey := c.Param("featureKey")

	decision, err := h.accessService.HasFeature(c.Request.Context(), userID, featureKey)
	if err != nil {
		utils.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Entitlement store unavailable")
		return
	}

	utils.Success(c, http.StatusOK, "Access resolved", decision)
}
