package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessSummaryResponse is the dashboard headline figures.
type BusinessSummaryResponse struct {
	TotalPoAmount       decimal.Decimal `json:"total_po_amount"`
	TotalPoCount        int             `json:"total_po_count"`
	CompletedPoCount    int             `json:"completed_po_count"`
	PendingPoCount      int             `json:"pending_po_count"`
	TotalInvoicedAmount decimal.Decimal `json:"total_invoiced_amount"`
	TotalInvoiceCount   int             `json:"total_invoice_count"`
	PaidAmount          decimal.Decimal `json:"paid_amount"`
	UnpaidAmount        decimal.Decimal `json:"unpaid_amount"`
}

// PendingItemDetailResponse is one order line in the pending quantity report.
type PendingItemDetailResponse struct {
	PoItemID         int64  `json:"po_item_id"`
	LineNumber       int    `json:"line_number"`
	ItemDescription  string `json:"item_description"`
	OrderedQuantity  int    `json:"ordered_quantity"`
	InvoicedQuantity int    `json:"invoiced_quantity"`
	PendingQuantity  int    `json:"pending_quantity"`
}

// PendingOrderResponse groups the pending quantity report by order.
type PendingOrderResponse struct {
	PoID          int64                       `json:"po_id"`
	InternalCode  string                      `json:"internal_code"`
	PoNumber      string                      `json:"po_number"`
	CustomerName  string                      `json:"customer_name"`
	PoDate        time.Time                   `json:"po_date"`
	TotalOrdered  int                         `json:"total_ordered"`
	TotalInvoiced int                         `json:"total_invoiced"`
	TotalPending  int                         `json:"total_pending"`
	Items         []PendingItemDetailResponse `json:"items"`
}
