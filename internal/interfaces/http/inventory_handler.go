package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// InventoryHandler entradas de mercancía, movimientos e inventarios físicos (protegido).
type InventoryHandler struct {
	stock  *inventory.StockInUseCase
	audits *inventory.AuditUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockInUseCase, audits *inventory.AuditUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{stock: stock, audits: audits, log: log}
}

// StockIn POST /api/stock/in
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stock.Receive(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements GET /api/stock/movements?product_id=
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.stock.ListMovements(c.Context(), c.Query("product_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListAudits GET /api/audits?status=draft|approved
func (h *InventoryHandler) ListAudits(c *fiber.Ctx) error {
	out, err := h.audits.ListAudits(c.Context(), entity.AuditStatus(c.Query("status")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateAudit POST /api/audits
func (h *InventoryHandler) CreateAudit(c *fiber.Ctx) error {
	var in dto.CreateAuditRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.audits.CreateAudit(c.Context(), in.Notes)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetAudit GET /api/audits/:id
func (h *InventoryHandler) GetAudit(c *fiber.Ctx) error {
	out, err := h.audits.GetAudit(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateAuditItem PUT /api/audits/items/:itemId
func (h *InventoryHandler) UpdateAuditItem(c *fiber.Ctx) error {
	var in dto.UpdateAuditItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.audits.UpdateItem(c.Context(), c.Params("itemId"), in.ActualQuantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ApproveAudit POST /api/audits/:id/approve
func (h *InventoryHandler) ApproveAudit(c *fiber.Ctx) error {
	out, err := h.audits.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
