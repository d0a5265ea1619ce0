package http

import (
	"net/http"

	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/scoring/service"

	"github.com/labstack/echo/v4"
)

// SignalHandler exposes signal cache state.
type SignalHandler struct {
	convictionService service.ConvictionService
}

func NewSignalHandler(convictionService service.ConvictionService) *SignalHandler {
	return &SignalHandler{convictionService: convictionService}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats", h.GetStats)
}

// RegisterHealth registers the health check on the root router.
func (h *SignalHandler) RegisterHealth(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// GetStats godoc
// @Summary Signal cache statistics
// @Description Entry counts per source, split into fresh and stale
// @Tags signals
// @Produce  json
// @Success 200 {object} dto.SignalStatsResponse
// @Router /signals/stats [get]
func (h *SignalHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.convictionService.SignalStats())
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SignalHandler) Health(c echo.Context) error {
	stats := h.convictionService.SignalStats()
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", CacheEntries: stats.Entries})
}
