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
	"github.com/google/uuid"

	"github.com/simindustries/bizdocs-api/internal/application/auth"
	"github.com/simindustries/bizdocs-api/internal/application/billing"
	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/orders"
	"github.com/simindustries/bizdocs-api/internal/application/reports"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	infrapdf "github.com/simindustries/bizdocs-api/internal/infrastructure/pdf"
	"github.com/simindustries/bizdocs-api/internal/infrastructure/postgres"
	httpRouter "github.com/simindustries/bizdocs-api/internal/interfaces/http"
	"github.com/simindustries/bizdocs-api/pkg/config"
	"github.com/simindustries/bizdocs-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	company := entity.CompanyProfile{
		Name:         cfg.Company.Name,
		AddressLine1: cfg.Company.AddressLine1,
		AddressLine2: cfg.Company.AddressLine2,
		City:         cfg.Company.City,
		State:        cfg.Company.State,
		StateCode:    cfg.Company.StateCode,
		Pincode:      cfg.Company.Pincode,
		Email:        cfg.Company.Email,
		Phone:        cfg.Company.Phone,
		GstNumber:    cfg.Company.GstNumber,
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	challanRepo := postgres.NewDeliveryChallanRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGen := infrapdf.NewGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := billing.NewCustomerUseCase(customerRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, poRepo, customerRepo, pdfGen, company)
	orderUC := orders.NewPurchaseOrderUseCase(txRunner, poRepo, customerRepo, pdfGen, company)
	challanUC := documents.NewChallanUseCase(txRunner, challanRepo, customerRepo, pdfGen, company)
	quotationUC := documents.NewQuotationUseCase(txRunner, quotationRepo, customerRepo, pdfGen, company)
	reportUC := reports.NewReportUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		JWTSecret:   cfg.JWT.Secret,
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		InvoiceUC:   invoiceUC,
		OrderUC:     orderUC,
		ChallanUC:   challanUC,
		QuotationUC: quotationUC,
		ReportUC:    reportUC,
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

// requestLogger tags each request with an id and logs method, path, status
// and latency once the handler chain returns.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
