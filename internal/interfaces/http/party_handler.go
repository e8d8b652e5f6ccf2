package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// PartyHandler maneja clientes o proveedores según el caso de uso recibido.
type PartyHandler struct {
	uc  *ledger.PartyUseCase
	log *logger.Logger
}

// NewPartyHandler construye el handler.
func NewPartyHandler(uc *ledger.PartyUseCase, log *logger.Logger) *PartyHandler {
	return &PartyHandler{uc: uc, log: log}
}

// register monta las rutas del tercero sobre el grupo.
func (h *PartyHandler) register(g fiber.Router) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/transactions", h.AllTransactions)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	g.Post("/:id/payments", h.Payment)
	g.Post("/:id/charges", h.Charge)
	g.Post("/:id/adjustments", h.Adjustment)
	g.Get("/:id/transactions", h.Transactions)
	g.Get("/:id/statement", h.Statement)
}

// List GET /api/{customers|suppliers}
func (h *PartyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create POST /api/{customers|suppliers}
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/{customers|suppliers}/:id
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update PUT /api/{customers|suppliers}/:id
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/{customers|suppliers}/:id. 409 si el saldo no es cero.
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	ok, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: ok})
}

// Payment POST /:id/payments
func (h *PartyHandler) Payment(c *fiber.Ctx) error {
	var in dto.LedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPayment(c.Context(), c.Params("id"), in.Amount, in.Description)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Charge POST /:id/charges (venta a crédito o compra según el tipo de tercero)
func (h *PartyHandler) Charge(c *fiber.Ctx) error {
	var in dto.LedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPurchaseOrSale(c.Context(), c.Params("id"), in.Amount, in.Description, in.InvoiceID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjustment POST /:id/adjustments
func (h *PartyHandler) Adjustment(c *fiber.Ctx) error {
	var in dto.LedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddAdjustment(c.Context(), c.Params("id"), in.Amount, in.Description)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transactions GET /:id/transactions
func (h *PartyHandler) Transactions(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.uc.Get(c.Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ListTransactions(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AllTransactions GET /transactions (todas las líneas del libro)
func (h *PartyHandler) AllTransactions(c *fiber.Ctx) error {
	out, err := h.uc.ListTransactions(c.Context(), "")
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Statement GET /:id/statement
func (h *PartyHandler) Statement(c *fiber.Ctx) error {
	out, err := h.uc.Statement(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
