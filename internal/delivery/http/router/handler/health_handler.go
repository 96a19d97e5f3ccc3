package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const dbProbeTimeout = 5 * time.Second

// HealthHandler exposes liveness and storage-readiness probes.
type HealthHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(db *gorm.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Live is a trivial liveness probe.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Database performs a storage round-trip and reports connectivity. The probe
// never echoes the raw database error; failures are summarized and logged
// server-side.
func (h *HealthHandler) Database(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbProbeTimeout)
	defer cancel()

	start := time.Now()
	var ok int
	err := h.db.WithContext(ctx).Raw("SELECT 1").Scan(&ok).Error
	elapsed := time.Since(start)

	if err != nil {
		h.logger.Warn("Database health probe failed", slog.Any("error", err))

		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"db": map[string]any{
				"status":  "disconnected",
				"message": "Database health check failed",
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
		"db": map[string]any{
			"status":       "connected",
			"responseTime": elapsed.String(),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
