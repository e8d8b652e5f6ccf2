package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Inventario-pos/internal/application/analytics"
	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/billing"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	infrapdf "github.com/jhoicas/Inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/persistence"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := persistence.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close()
	store := storage.NewStore(backend, cfg.Store.KeyPrefix, log)

	policy := inventory.StockPolicy{AllowNegativeStock: cfg.Inventory.AllowNegativeStock}
	productUC := inventory.NewProductUseCase(store, policy, log)
	customerUC := ledger.NewPartyUseCase(entity.PartyCustomer, store, log)
	supplierUC := ledger.NewPartyUseCase(entity.PartySupplier, store, log)
	stockInUC := inventory.NewStockInUseCase(store, productUC, supplierUC, log)
	auditUC := inventory.NewAuditUseCase(store, log)
	checkoutUC := billing.NewCheckoutUseCase(store, productUC, customerUC, log)

	// PDF: comprobante de venta
	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.Receipt.Locale)
	receiptUC := billing.NewReceiptUseCase(store, pdfGenerator, cfg.Receipt.BusinessName)

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if _, err := authUC.EnsureDefaultUser(ctx, cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword); err != nil {
		log.Fatal().Err(err).Msg("crear usuario por defecto")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		AuthUC:      authUC,
		ProductUC:   productUC,
		StockInUC:   stockInUC,
		AuditUC:     auditUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		CheckoutUC:  checkoutUC,
		ReceiptUC:   receiptUC,
		DashboardUC: appanalytics.NewDashboardUseCase(store),
		ReportUC:    appanalytics.NewReportUseCase(store),
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
