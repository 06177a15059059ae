// Package ledger derives purchase-order fulfillment state: how much of each
// ordered line is still pending, whether requested invoice quantities fit, and
// whether the order as a whole is completed. All functions are pure over typed
// rows; the data-access layer maps its aggregate queries into ItemFulfillment
// before anything here runs.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simindustries/bizdocs-api/internal/domain"
)

// ItemFulfillment is the fulfillment state of one non-deleted purchase-order
// line: the ordered quantity and the sum of quantities invoiced against it
// across all non-soft-deleted invoices.
type ItemFulfillment struct {
	PoItemID        int64
	LineNumber      int
	ItemDescription string
	HsnCode         string
	UnitPrice       decimal.Decimal
	Ordered         int
	Invoiced        int
}

// Pending is the quantity still open for invoicing, floored at zero. The
// validation path keeps real pending from going negative; the floor is only a
// reporting guard.
func (f ItemFulfillment) Pending() int {
	if p := f.Ordered - f.Invoiced; p > 0 {
		return p
	}
	return 0
}

// IsCompleted reports whether every line is fully invoiced. An order with no
// active lines is vacuously completed; see the open-question note in DESIGN.md.
func IsCompleted(items []ItemFulfillment) bool {
	for _, f := range items {
		if f.Ordered > f.Invoiced {
			return false
		}
	}
	return true
}

// ValidateRequested checks a proposed set of invoice quantities (by purchase
// order item id) against the current fulfillment snapshot. It fails when no
// line carries a positive quantity, when a quantity targets an unknown line,
// or when a quantity exceeds that line's pending amount. All failures are
// collected into one *domain.ValidationError; nil means the set is invoiceable.
//
// The snapshot must be read in the same transaction that inserts the invoice,
// otherwise two concurrent invoices can both pass against stale pending
// quantities and over-invoice the line.
func ValidateRequested(items []ItemFulfillment, requested map[int64]int) error {
	byID := make(map[int64]ItemFulfillment, len(items))
	for _, f := range items {
		byID[f.PoItemID] = f
	}

	ve := &domain.ValidationError{}
	positive := 0
	for itemID, qty := range requested {
		if qty <= 0 {
			continue
		}
		positive++
		f, ok := byID[itemID]
		if !ok {
			ve.Add("items", fmt.Sprintf("item %d does not belong to this purchase order", itemID))
			continue
		}
		if qty > f.Pending() {
			ve.Add("items", fmt.Sprintf("quantity for %q exceeds pending quantity (%d requested, %d pending)",
				f.ItemDescription, qty, f.Pending()))
		}
	}
	if positive == 0 {
		ve.Add("items", "at least one item with a positive quantity is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
