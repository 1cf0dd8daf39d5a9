package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// ModuleHandler serves the public module catalog.
type ModuleHandler struct {
	catalogService *service.CatalogService
}

// NewModuleHandler creates a new ModuleHandler.
func NewModuleHandler(catalogService *service.CatalogService) *ModuleHandler {
	return &ModuleHandler{catalogService: catalogService}
}

// ListModules handles GET /v1/modules
func (h *ModuleHandler) ListModules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	modules, pagination, err := h.catalogService.ListModules(service.ModuleFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list modules")
		return
	}

	utils.SuccessWithPagination(c, http.StatusOK, "Modules retrieved",
		modules, pagination.Page, pagination.Limit, pagination.TotalItems)
}

// GetModule handles GET /v1/modules/:id
func (h *ModuleHandler) GetModule(c *gin.Context) {
	module, err := h.catalogService.GetModule(c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrModuleNotFound) {
			utils.Error(c, http.StatusNotFound, "MODULE_NOT_FOUND", "Module not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get module")
		return
	}

	utils.Success(c, http.StatusOK, "Module retrieved", module)
}

// ListAddons handles GET /v1/modules/:id/addons
func (h *ModuleHandler) ListAddons(c *gin.Context) {
	addons, err := h.catalogService.ListAddons(c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrModuleNotFound) {
			utils.Error(c, http.StatusNotFound, "MODULE_NOT_FOUND", "Module not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list add-ons")
		return
	}

	utils.Success(c, http.StatusOK, "Add-ons retrieved", addons)
}
