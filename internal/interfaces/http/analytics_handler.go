package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-pos/internal/application/analytics"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// AnalyticsHandler reportes de ventas, existencias e inventarios.
type AnalyticsHandler struct {
	uc  *appanalytics.ReportUseCase
	log *logger.Logger
	now func() time.Time
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.ReportUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log, now: time.Now}
}

// DailySales GET /api/reports/sales/daily?date=YYYY-MM-DD (por defecto hoy, UTC)
func (h *AnalyticsHandler) DailySales(c *fiber.Ctx) error {
	date := h.now().UTC()
	if q := c.Query("date"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			return writeError(c, h.log, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput))
		}
		date = d
	}
	out, err := h.uc.DailySales(c.Context(), date)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MonthlySales GET /api/reports/sales/monthly?year=&month= (por defecto el mes en curso)
func (h *AnalyticsHandler) MonthlySales(c *fiber.Ctx) error {
	now := h.now().UTC()
	out, err := h.uc.MonthlySales(c.Context(), c.QueryInt("year", now.Year()), c.QueryInt("month", int(now.Month())))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock GET /api/reports/low-stock
func (h *AnalyticsHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AuditDifferences GET /api/reports/audits
func (h *AnalyticsHandler) AuditDifferences(c *fiber.Ctx) error {
	out, err := h.uc.AuditDifferences(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
