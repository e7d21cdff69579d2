package handlers

import (
	"hotel-desk/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db      *gorm.DB
	appMode string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, appMode string) *HealthHandler {
	return &HealthHandler{db: db, appMode: appMode}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "Hotel Desk API v1.0 is running",
		"mode":    h.appMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck reports API and database health. It is the remote test-connection call.
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus, overall := "healthy", "ok"
	status := fiber.StatusOK
	if err := config.HealthCheck(h.db); err != nil {
		dbStatus, overall = "unhealthy", "degraded"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success": status == fiber.StatusOK,
		"status":  overall,
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}
