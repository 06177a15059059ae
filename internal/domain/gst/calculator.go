// Package gst computes the tax breakdown and round-off for GST invoices.
//
// Indian GST splits the rate into CGST + SGST (intra-state) or IGST
// (inter-state); all three are simple additive percentages over the taxable
// subtotal. Grand totals are rounded to the whole rupee and the signed
// adjustment is recorded as a round-off line so the ledger balances.
package gst

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1) // 0.5
)

// Totals is the computed tax breakdown for an invoice.
type Totals struct {
	TaxAmount  decimal.Decimal // subtotal * (cgst + sgst + igst) / 100
	RoundOff   decimal.Decimal // GrandTotal - (subtotal + TaxAmount), in (-0.5, 0.5]
	GrandTotal decimal.Decimal // whole currency units
}

// ComputeTotals computes tax, grand total and round-off from a subtotal and
// the three GST percentage rates. It is pure: the same function runs at
// invoice creation (subtotal = sum of line amounts) and at invoice edit
// (subtotal = the edited total amount).
//
// The grand total rounds half away from zero: a raw total ending in exactly
// .50 moves to the next whole unit away from zero (1234.50 -> 1235). This is
// the convention used on printed GST invoices and differs from banker's
// rounding.
func ComputeTotals(subtotal, cgstPct, sgstPct, igstPct decimal.Decimal) Totals {
	taxAmount := subtotal.Mul(cgstPct.Add(sgstPct).Add(igstPct)).Div(hundred)
	rawTotal := subtotal.Add(taxAmount)
	grandTotal := roundHalfAwayFromZero(rawTotal)
	return Totals{
		TaxAmount:  taxAmount,
		RoundOff:   grandTotal.Sub(rawTotal),
		GrandTotal: grandTotal,
	}
}

// roundHalfAwayFromZero rounds d to zero decimal places with ties going away
// from zero. Implemented as floor(|d| + 0.5) with the sign reapplied, so the
// tie-breaking rule is explicit rather than inherited from a library mode.
func roundHalfAwayFromZero(d decimal.Decimal) decimal.Decimal {
	rounded := d.Abs().Add(half).Floor()
	if d.Sign() < 0 {
		return rounded.Neg()
	}
	return rounded
}
