package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-pos/internal/application/analytics"
	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/billing"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	AuthUC      *auth.AuthUseCase
	ProductUC   *inventory.ProductUseCase
	StockInUC   *inventory.StockInUseCase
	AuditUC     *inventory.AuditUseCase
	CustomerUC  *ledger.PartyUseCase
	SupplierUC  *ledger.PartyUseCase
	CheckoutUC  *billing.CheckoutUseCase
	ReceiptUC   *billing.ReceiptUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión activa)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/adjust", productHandler.Adjust)

	NewPartyHandler(deps.CustomerUC, log).register(protected.Group("/customers"))
	NewPartyHandler(deps.SupplierUC, log).register(protected.Group("/suppliers"))

	invoiceHandler := NewInvoiceHandler(deps.CheckoutUC, deps.ReceiptUC, log)
	protected.Post("/sales/checkout", invoiceHandler.Checkout)
	invoices := protected.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	inventoryHandler := NewInventoryHandler(deps.StockInUC, deps.AuditUC, log)
	protected.Post("/stock/in", inventoryHandler.StockIn)
	protected.Get("/stock/movements", inventoryHandler.Movements)
	audits := protected.Group("/audits")
	audits.Get("/", inventoryHandler.ListAudits)
	audits.Post("/", inventoryHandler.CreateAudit)
	audits.Put("/items/:itemId", inventoryHandler.UpdateAuditItem)
	audits.Get("/:id", inventoryHandler.GetAudit)
	audits.Post("/:id/approve", inventoryHandler.ApproveAudit)

	protected.Get("/dashboard/stats", NewDashboardHandler(deps.DashboardUC, log).GetStats)

	reports := protected.Group("/reports")
	analyticsHandler := NewAnalyticsHandler(deps.ReportUC, log)
	reports.Get("/sales/daily", analyticsHandler.DailySales)
	reports.Get("/sales/monthly", analyticsHandler.MonthlySales)
	reports.Get("/low-stock", analyticsHandler.LowStock)
	reports.Get("/audits", analyticsHandler.AuditDifferences)
}
