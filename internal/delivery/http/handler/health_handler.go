package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	cacheHealth func(ctx context.Context) error
	logger      *zap.Logger
}

func NewHealthHandler(cacheHealth func(ctx context.Context) error, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		cacheHealth: cacheHealth,
		logger:      logger,
	}
}

// Health godoc
// @Summary Health check
// @Description Reports liveness of the service and the result cache.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	cacheStatus := "healthy"
	if h.cacheHealth != nil {
		if err := h.cacheHealth(c.Context()); err != nil {
			h.logger.Warn("Result cache health check failed", zap.Error(err))
			cacheStatus = "unavailable"
		}
	}

	return c.JSON(fiber.Map{
		"status": "healthy",
		"cache":  cacheStatus,
		"time":   time.Now().UTC(),
	})
}
