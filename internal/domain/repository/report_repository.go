package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Each report query maps to an explicit typed row shape here; untyped rows
// never cross the data-access boundary.

// BusinessSummary aggregates purchase orders and invoices for the dashboard.
type BusinessSummary struct {
	TotalPoAmount       decimal.Decimal
	TotalPoCount        int
	CompletedPoCount    int
	PendingPoCount      int
	TotalInvoicedAmount decimal.Decimal
	TotalInvoiceCount   int
	PaidAmount          decimal.Decimal
	UnpaidAmount        decimal.Decimal
}

// PendingQuantityPoSummary is the per-order roll-up of the pending report.
type PendingQuantityPoSummary struct {
	PoID                  int64
	InternalCode          string
	PoNumber              string
	CustomerName          string
	PoDate                time.Time
	TotalOrderedQuantity  int
	TotalInvoicedQuantity int
	ItemDetails           []PendingQuantityItemDetail
}

// PendingQuantityItemDetail is one purchase-order line of the pending report.
type PendingQuantityItemDetail struct {
	PoItemID         int64
	LineNumber       int
	ItemDescription  string
	OrderedQuantity  int
	InvoicedQuantity int
}

// ReportRepository runs the cross-entity aggregate queries behind the reports.
type ReportRepository interface {
	BusinessSummary() (*BusinessSummary, error)
	PendingQuantities() ([]*PendingQuantityPoSummary, error)
}
