package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-pos/internal/application/analytics"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
	now func() time.Time
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log, now: time.Now}
}

// GetStats devuelve las cifras del día y del mes en curso.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context(), h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
