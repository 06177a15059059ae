package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simindustries/bizdocs-api/internal/application/auth"
	"github.com/simindustries/bizdocs-api/internal/application/billing"
	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/orders"
	"github.com/simindustries/bizdocs-api/internal/application/reports"
)

// RouterDeps carries the wired use cases the router needs.
type RouterDeps struct {
	JWTSecret   string
	AuthUC      *auth.AuthUseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	OrderUC     *orders.PurchaseOrderUseCase
	ChallanUC   *documents.ChallanUseCase
	QuotationUC *documents.QuotationUseCase
	ReportUC    *reports.ReportUseCase
}

// Router mounts every route on the Fiber app. Everything under /api except
// login sits behind the JWT middleware.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Deletes are destructive even when soft; only admins get them.
	adminOnly := RequireRole("admin")

	protected.Get("/auth/profile", authHandler.Profile)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/states", customerHandler.States)
	customers.Get("/dropdown", customerHandler.Dropdown)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	pos := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.OrderUC)
	pos.Get("/dropdown", poHandler.Dropdown)
	pos.Get("/next-code", poHandler.NextCode)
	pos.Post("/", poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.Get)
	pos.Put("/:id", poHandler.Update)
	pos.Delete("/:id", adminOnly, poHandler.Delete)
	pos.Get("/:id/pending-items", poHandler.PendingItems)
	pos.Get("/:id/pdf", poHandler.PDF)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/all", invoiceHandler.List)
	invoices.Get("/next-number", invoiceHandler.NextNumber)
	invoices.Get("/unpaid-count", invoiceHandler.UnpaidCount)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.Search)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	challans := protected.Group("/challans")
	challanHandler := NewChallanHandler(deps.ChallanUC)
	challans.Get("/next-number", challanHandler.NextNumber)
	challans.Post("/", challanHandler.Create)
	challans.Get("/", challanHandler.List)
	challans.Get("/:id", challanHandler.Get)
	challans.Delete("/:id", adminOnly, challanHandler.Delete)
	challans.Get("/:id/pdf", challanHandler.PDF)

	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Get("/next-number", quotationHandler.NextNumber)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.Get)
	quotations.Delete("/:id", adminOnly, quotationHandler.Delete)
	quotations.Get("/:id/pdf", quotationHandler.PDF)

	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/summary", reportHandler.Summary)
	reportsGroup.Get("/pending-quantities", reportHandler.PendingQuantities)
}
