package billing

import (
	"context"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside one database transaction spanning
// the invoice and purchase-order repositories. Callbacks lock the order row
// (GetByIDForUpdate) before snapshotting fulfillments, so two concurrent
// invoices against the same order serialize at the database instead of both
// validating off a stale snapshot.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// InvoicePDFGenerator renders a GST tax invoice as PDF bytes.
type InvoicePDFGenerator interface {
	RenderInvoice(inv *entity.Invoice, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error)
}
