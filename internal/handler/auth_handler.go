package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t-ecosystem/market_api/internal/middleware"
	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService *service.AuthService
	rateLimiter *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, rateLimiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, utils.ErrEmailTaken) {
			utils.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		return
	}

	utils.Success(c, http.StatusCreated, "User registered", result)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if h.rateLimiter != nil && !h.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			if h.rateLimiter != nil {
				h.rateLimiter.RecordFailure(c.ClientIP())
			}
			utils.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", result)
}
