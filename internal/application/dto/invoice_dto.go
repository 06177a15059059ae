package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest bills a quantity against one purchase order line.
// Lines with a zero or negative quantity are ignored.
type InvoiceItemRequest struct {
	PoItemID int64 `json:"po_item_id"`
	Quantity int   `json:"quantity"`
}

// InvoiceCreateRequest creates a new invoice against an order. GST rates are
// copied from the order at creation time and never change afterwards. An empty
// invoice number asks the server to generate the next one in sequence.
type InvoiceCreateRequest struct {
	PoID            int64                `json:"po_id"`
	InvoiceNumber   string               `json:"invoice_number"`
	InvoiceDate     time.Time            `json:"invoice_date"`
	ShippingAddress string               `json:"shipping_address"`
	FreightAmount   decimal.Decimal      `json:"freight_amount"`
	ContactName     string               `json:"contact_name"`
	ContactNo       string               `json:"contact_no"`
	VehicleNo       string               `json:"vehicle_no"`
	SimDcNo         string               `json:"sim_dc_no"`
	YourDcNo        string               `json:"your_dc_no"`
	Remarks         string               `json:"remarks"`
	Items           []InvoiceItemRequest `json:"items"`
}

// InvoiceUpdateRequest edits header fields of an existing invoice. Line
// quantities and GST rates are frozen at creation; to change quantities,
// delete the invoice and raise a new one.
type InvoiceUpdateRequest struct {
	InvoiceNumber   string          `json:"invoice_number"`
	InvoiceDate     time.Time       `json:"invoice_date"`
	ShippingAddress string          `json:"shipping_address"`
	FreightAmount   decimal.Decimal `json:"freight_amount"`
	ContactName     string          `json:"contact_name"`
	ContactNo       string          `json:"contact_no"`
	VehicleNo       string          `json:"vehicle_no"`
	SimDcNo         string          `json:"sim_dc_no"`
	YourDcNo        string          `json:"your_dc_no"`
	Remarks         string          `json:"remarks"`
	IsPaid          bool            `json:"is_paid"`
}

// InvoiceItemResponse is one billed line of an invoice.
type InvoiceItemResponse struct {
	ID              int64           `json:"id"`
	PoItemID        int64           `json:"po_item_id"`
	ItemDescription string          `json:"item_description"`
	HsnCode         string          `json:"hsn_code,omitempty"`
	OrderedQuantity int             `json:"ordered_quantity"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineAmount      decimal.Decimal `json:"line_amount"`
}

// InvoiceResponse is the public view of an invoice.
type InvoiceResponse struct {
	ID              int64                 `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	PoID            int64                 `json:"po_id"`
	PoNumber        string                `json:"po_number,omitempty"`
	InternalCode    string                `json:"internal_code,omitempty"`
	CustomerID      int64                 `json:"customer_id,omitempty"`
	CustomerName    string                `json:"customer_name,omitempty"`
	InvoiceDate     time.Time             `json:"invoice_date"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	CgstPercent     decimal.Decimal       `json:"cgst_percent"`
	SgstPercent     decimal.Decimal       `json:"sgst_percent"`
	IgstPercent     decimal.Decimal       `json:"igst_percent"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	RoundOff        decimal.Decimal       `json:"round_off"`
	GrandTotal      decimal.Decimal       `json:"grand_total"`
	ShippingAddress string                `json:"shipping_address,omitempty"`
	FreightAmount   decimal.Decimal       `json:"freight_amount"`
	ContactName     string                `json:"contact_name,omitempty"`
	ContactNo       string                `json:"contact_no,omitempty"`
	VehicleNo       string                `json:"vehicle_no,omitempty"`
	SimDcNo         string                `json:"sim_dc_no,omitempty"`
	YourDcNo        string                `json:"your_dc_no,omitempty"`
	Remarks         string                `json:"remarks,omitempty"`
	IsPaid          bool                  `json:"is_paid"`
	TotalQuantity   int                   `json:"total_quantity,omitempty"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoicePageResponse is one page of the invoice register together with the
// aggregates over the whole filtered set, not just the page.
type InvoicePageResponse struct {
	Invoices      []InvoiceResponse `json:"invoices"`
	TotalCount    int               `json:"total_count"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	TotalQuantity int               `json:"total_quantity"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
}
