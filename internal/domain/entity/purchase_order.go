package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPurchaseOrderItems is the hard cap on line items per purchase order.
const MaxPurchaseOrderItems = 10

// PurchaseOrder is a customer purchase order against which invoices are raised.
// IsCompleted is a denormalized flag: true iff every non-deleted item has zero
// pending quantity. It is recomputed transactionally whenever an invoice is
// created or soft-deleted, never on read.
type PurchaseOrder struct {
	ID              int64
	PoNumber        string // unique, user supplied
	InternalCode    string // unique, generated (SIMPOxxxx)
	CustomerID      int64
	PoAmount        decimal.Decimal // sum of item line totals
	CgstPercent     decimal.Decimal
	SgstPercent     decimal.Decimal
	IgstPercent     decimal.Decimal
	PoDate          time.Time
	StartDate       *time.Time
	EndDate         *time.Time
	IsCompleted     bool
	IsDeleted       bool
	CreatedAt       time.Time
	CreatedByUserID int64

	// Populated by joins, not columns of purchase_orders.
	CustomerName      string
	CreatedByUsername string
	Items             []*PurchaseOrderItem
	Invoices          []*Invoice
}

// PurchaseOrderItem is one line of a purchase order. Quantities are never
// mutated in place: invoiced/pending amounts are derived from invoice items,
// and an edited order soft-deletes all old lines and inserts the new set.
type PurchaseOrderItem struct {
	ID              int64
	PoID            int64
	LineNumber      int
	ItemDescription string
	HsnCode         string
	Quantity        int // ordered quantity, > 0
	UnitPrice       decimal.Decimal
	LineTotal       decimal.Decimal
	IsDeleted       bool

	// InvoicedQuantity is an aggregate over non-deleted invoices, populated
	// only by pending-quantity queries.
	InvoicedQuantity int
}

// PendingQuantity is the quantity still open for invoicing, floored at zero
// for display. Validation keeps it from ever going negative in the database.
func (i *PurchaseOrderItem) PendingQuantity() int {
	if p := i.Quantity - i.InvoicedQuantity; p > 0 {
		return p
	}
	return 0
}
