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

	"github.com/slodongo/kgl-api/internal/application/auth"
	"github.com/slodongo/kgl-api/internal/application/procurement"
	"github.com/slodongo/kgl-api/internal/application/reports"
	"github.com/slodongo/kgl-api/internal/application/sales"
	infrapdf "github.com/slodongo/kgl-api/internal/infrastructure/pdf"
	"github.com/slodongo/kgl-api/internal/infrastructure/postgres"
	httpRouter "github.com/slodongo/kgl-api/internal/interfaces/http"
	"github.com/slodongo/kgl-api/pkg/config"
	"github.com/slodongo/kgl-api/pkg/logger"
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
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	produceRepo := postgres.NewProduceRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	creditRepo := postgres.NewCreditSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:  cfg.JWT.Secret,
		ExpDays: cfg.JWT.ExpDays,
		Issuer:  cfg.JWT.Issuer,
	})
	procurementUC := procurement.NewProcurementUseCase(produceRepo)
	salesUC := sales.NewSalesUseCase(txRunner, saleRepo, creditRepo)
	receiptUC := sales.NewReceiptUseCase(salesUC, infrapdf.NewMarotoReceiptGenerator())
	reportsUC := reports.NewReportsUseCase(saleRepo, creditRepo, produceRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "KGL API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProcurementUC: procurementUC,
		SalesUC:       salesUC,
		ReceiptUC:     receiptUC,
		ReportsUC:     reportsUC,
		UserRepo:      userRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
