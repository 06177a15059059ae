package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice bills part or all of a purchase order. The GST percentages are copied
// from the parent order when the invoice is created and frozen from then on:
// editing the order's rates later must not change an already-issued invoice.
//
// Invariant: GrandTotal = round(TotalAmount + TaxAmount) to a whole currency
// unit, half away from zero, with RoundOff = GrandTotal - (TotalAmount + TaxAmount).
type Invoice struct {
	ID              int64
	PoID            int64
	InvoiceNumber   string // unique (SIMINVxxxx offered by default)
	InvoiceDate     time.Time
	TotalAmount     decimal.Decimal // sum of item line amounts
	CgstPercent     decimal.Decimal
	SgstPercent     decimal.Decimal
	IgstPercent     decimal.Decimal
	TaxAmount       decimal.Decimal
	RoundOff        decimal.Decimal
	GrandTotal      decimal.Decimal
	ShippingAddress string // optional override of the customer address
	FreightAmount   decimal.Decimal
	ContactName     string
	ContactNo       string
	VehicleNo       string
	SimDcNo         string // our delivery challan reference
	YourDcNo        string // customer's challan reference
	Remarks         string
	IsPaid          bool
	IsDeleted       bool
	CreatedAt       time.Time

	// Populated by joins.
	PoNumber      string
	InternalCode  string
	CustomerID    int64
	CustomerName  string
	TotalQuantity int
	Items         []*InvoiceItem
}

// CgstAmount is the CGST component of the tax, derived for display.
func (inv *Invoice) CgstAmount() decimal.Decimal {
	return inv.TotalAmount.Mul(inv.CgstPercent).Div(decimal.NewFromInt(100))
}

// SgstAmount is the SGST component of the tax, derived for display.
func (inv *Invoice) SgstAmount() decimal.Decimal {
	return inv.TotalAmount.Mul(inv.SgstPercent).Div(decimal.NewFromInt(100))
}

// IgstAmount is the IGST component of the tax, derived for display.
func (inv *Invoice) IgstAmount() decimal.Decimal {
	return inv.TotalAmount.Mul(inv.IgstPercent).Div(decimal.NewFromInt(100))
}

// InvoiceItem is one invoiced line. PoItemID is a read-only back-reference to
// the purchase-order line (for description and HSN lookup); the order line is
// never the source of truth for the invoiced quantity.
type InvoiceItem struct {
	ID         int64
	InvoiceID  int64
	PoItemID   int64
	Quantity   int // > 0 and <= pending quantity at creation time
	UnitPrice  decimal.Decimal
	LineAmount decimal.Decimal // Quantity * UnitPrice

	// Populated from the purchase-order line by joins.
	ItemDescription string
	HsnCode         string
	OrderedQuantity int
}
