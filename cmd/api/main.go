package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/invoicedesk/invoicedesk-api/internal/application/auth"
	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/usecase"
	"github.com/invoicedesk/invoicedesk-api/internal/infrastructure/excel"
	infrapdf "github.com/invoicedesk/invoicedesk-api/internal/infrastructure/pdf"
	"github.com/invoicedesk/invoicedesk-api/internal/infrastructure/postgres"
	httpRouter "github.com/invoicedesk/invoicedesk-api/internal/interfaces/http"
	"github.com/invoicedesk/invoicedesk-api/pkg/config"
	"github.com/invoicedesk/invoicedesk-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo, txRunner)
	customerUC := usecase.NewCustomerUseCase(customerRepo, companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, companyRepo)

	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, companyRepo, customerRepo, productRepo, seqRepo,
		billing.Config{GSTRate: cfg.Billing.GSTRate},
	)

	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()
	excelGenerator := excel.NewExcelizeGenerator()
	exportUC := billing.NewExportUseCase(
		invoiceRepo, companyRepo, customerRepo, productRepo,
		pdfGenerator, excelGenerator, excelGenerator,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "InvoiceDesk API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		CustomerUC: customerUC,
		ProductUC:  productUC,
		InvoiceUC:  invoiceUC,
		ExportUC:   exportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
