package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one line of a create/update order form.
type PurchaseOrderItemRequest struct {
	ItemDescription string          `json:"item_description"`
	HsnCode         string          `json:"hsn_code"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderRequest creates or replaces a purchase order. On update the
// item list fully replaces the existing lines (old lines are soft-deleted).
type PurchaseOrderRequest struct {
	PoNumber    string                     `json:"po_number"`
	CustomerID  int64                      `json:"customer_id"`
	CgstPercent decimal.Decimal            `json:"cgst_percent"`
	SgstPercent decimal.Decimal            `json:"sgst_percent"`
	IgstPercent decimal.Decimal            `json:"igst_percent"`
	PoDate      time.Time                  `json:"po_date"`
	StartDate   *time.Time                 `json:"start_date,omitempty"`
	EndDate     *time.Time                 `json:"end_date,omitempty"`
	Items       []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemResponse is one order line with its fulfillment state.
type PurchaseOrderItemResponse struct {
	ID              int64           `json:"id"`
	LineNumber      int             `json:"line_number"`
	ItemDescription string          `json:"item_description"`
	HsnCode         string          `json:"hsn_code,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse is the public view of a purchase order.
type PurchaseOrderResponse struct {
	ID           int64                       `json:"id"`
	PoNumber     string                      `json:"po_number"`
	InternalCode string                      `json:"internal_code"`
	CustomerID   int64                       `json:"customer_id"`
	CustomerName string                      `json:"customer_name,omitempty"`
	PoAmount     decimal.Decimal             `json:"po_amount"`
	CgstPercent  decimal.Decimal             `json:"cgst_percent"`
	SgstPercent  decimal.Decimal             `json:"sgst_percent"`
	IgstPercent  decimal.Decimal             `json:"igst_percent"`
	PoDate       time.Time                   `json:"po_date"`
	StartDate    *time.Time                  `json:"start_date,omitempty"`
	EndDate      *time.Time                  `json:"end_date,omitempty"`
	IsCompleted  bool                        `json:"is_completed"`
	Items        []PurchaseOrderItemResponse `json:"items,omitempty"`
	Invoices     []InvoiceResponse           `json:"invoices,omitempty"`
}

// PurchaseOrderRefResponse backs the order dropdown (open orders only).
type PurchaseOrderRefResponse struct {
	ID           int64  `json:"id"`
	InternalCode string `json:"internal_code"`
	PoNumber     string `json:"po_number"`
	CustomerName string `json:"customer_name"`
	Label        string `json:"label"`
}

// PendingItemResponse is the fulfillment state of one order line, used when
// preparing an invoice against the order.
type PendingItemResponse struct {
	PoItemID         int64           `json:"po_item_id"`
	LineNumber       int             `json:"line_number"`
	ItemDescription  string          `json:"item_description"`
	HsnCode          string          `json:"hsn_code,omitempty"`
	OrderedQuantity  int             `json:"ordered_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	InvoicedQuantity int             `json:"invoiced_quantity"`
	PendingQuantity  int             `json:"pending_quantity"`
}
