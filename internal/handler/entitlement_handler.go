package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// EntitlementHandler serves the authenticated install/uninstall surface.
type EntitlementHandler struct {
	entitlementService *service.EntitlementService
}

// NewEntitlementHandler creates a new EntitlementHandler.
func NewEntitlementHandler(entitlementService *service.EntitlementService) *EntitlementHandler {
	return &EntitlementHandler{entitlementService: entitlementService}
}

// ListEntitlements handles GET /v1/entitlements
func (h *EntitlementHandler) ListEntitlements(c *gin.Context) {
	userID := c.GetString("user_id")

	modules, err := h.entitlementService.ListInstalled(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Entitlement store unavailable")
		return
	}

	utils.Success(c, http.StatusOK, "Entitlements retrieved", modules)
}

// InstallModule handles POST /v1/modules/:id/install
func (h *EntitlementHandler) InstallModule(c *gin.Context) {
	userID := c.GetString("user_id")
	moduleID := c.Param("id")

	err := h.entitlementService.InstallDirect(c.Request.Context(), userID, moduleID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrModuleNotFound):
			utils.Error(c, http.StatusNotFound, "MODULE_NOT_FOUND", "Module not found")
		case errors.Is(err, utils.ErrDependencyNotMet):
			utils.Error(c, http.StatusConflict, "DEPENDENCY_NOT_MET", err.Error())
		case errors.Is(err, utils.ErrCheckoutRequired):
			utils.Error(c, http.StatusPaymentRequired, "CHECKOUT_REQUIRED", "Paid modules must be purchased through checkout")
		case errors.Is(err, utils.ErrInstallInFlight):
			utils.Error(c, http.StatusConflict, "INSTALL_IN_FLIGHT", "Another install for this module is in progress")
		default:
			utils.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Entitlement store unavailable")
		}
		return
	}

	utils.Success(c, http.StatusOK, "Module installed", gin.H{"moduleId": moduleID})
}

// UninstallModule handles DELETE /v1/modules/:id/install
func (h *EntitlementHandler) UninstallModule(c *gin.Context) {
	userID := c.GetString("user_id")
	moduleID := c.Param("id")

	err := h.entitlementService.Uninstall(c.Request.Context(), userID, moduleID)
	if err != nil {
		if errors.Is(err, utils.ErrModuleNotFound) {
			utils.Error(c, http.StatusNotFound, "MODULE_NOT_FOUND", "Module not found")
			return
		}
		utils.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Entitlement store unavailable")
		return
	}

	utils.Success(c, http.StatusOK, "Module uninstalled", gin.H{"moduleId": moduleID})
}
