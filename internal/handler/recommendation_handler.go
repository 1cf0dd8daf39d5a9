package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t-ecosystem/market_api/internal/models"
	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// RecommendationHandler serves onboarding recommendations.
type RecommendationHandler struct {
	recommendationService *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GetRecommendations handles POST /v1/recommendations
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var profile models.OnboardingProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.recommendationService.GetRecommendations(&profile)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidProfile) {
			utils.Error(c, http.StatusBadRequest, "INVALID_PROFILE", err.Error())
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build recommendations")
		return
	}

	utils.Success(c, http.StatusOK, "Recommendations generated", result)
}
