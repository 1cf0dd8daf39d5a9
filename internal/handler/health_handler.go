package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/t-ecosystem/market_api/internal/cache"
	"github.com/t-ecosystem/market_api/internal/utils"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health handles GET /v1/health
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{
		"status":   "ok",
		"database": "ok",
		"redis":    "ok",
	}
	code := http.StatusOK

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = "unreachable"
		}
	}

	utils.Success(c, code, "Health check", status)
}
