package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simindustries/bizdocs-api/internal/application/billing"
	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/orders"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// Ensure TxRunner satisfies the application-side runner ports.
var _ orders.OrdersTxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ documents.DocumentsTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction. Repos handed
// to the callback are bound to the transaction, so everything the callback
// does commits or rolls back as one unit.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrders runs fn with a transaction-bound purchase-order repository.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(poRepo repository.PurchaseOrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling runs fn with transaction-bound invoice and purchase-order
// repositories. Invoice creation and deletion use it, locking the order row
// first, so the fulfillment snapshot, the writes and the completion recompute
// cannot interleave with a concurrent invoice against the same order.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx), NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocuments runs fn with transaction-bound challan and quotation
// repositories. Challan and quotation creation use it so a header insert
// never survives a failed item insert.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(
	challanRepo repository.DeliveryChallanRepository,
	quotationRepo repository.QuotationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDeliveryChallanRepository(tx), NewQuotationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
