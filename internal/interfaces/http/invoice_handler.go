package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/billing"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// InvoiceHandler maneja la venta y la consulta de facturas (protegido).
type InvoiceHandler struct {
	checkout *billing.CheckoutUseCase
	receipt  *billing.ReceiptUseCase
	log      *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(checkout *billing.CheckoutUseCase, receipt *billing.ReceiptUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{checkout: checkout, receipt: receipt, log: log}
}

// Checkout crea la factura, descuenta inventario y carga el crédito.
// POST /api/sales/checkout
func (h *InvoiceHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.checkout.Checkout(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.checkout.ListInvoices(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.checkout.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.Render(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
