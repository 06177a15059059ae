package gst_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simindustries/bizdocs-api/internal/domain/gst"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Reference vectors checked by hand at 2-decimal-place currency precision.
func TestComputeTotals_Vectors(t *testing.T) {
	tests := []struct {
		name             string
		subtotal         string
		cgst, sgst, igst string
		wantTax          string
		wantGrand        string
		wantRoundOff     string
	}{
		{"exact, no round-off", "1000", "9", "9", "0", "180", "1180", "0"},
		{"fractional tax rounds down", "1234.30", "9", "9", "0", "222.174", "1456", "-0.474"},
		{"fractional tax rounds up", "1234.80", "9", "9", "0", "222.264", "1457", "-0.064"},
		{"igst only", "5000", "0", "0", "18", "900", "5900", "0"},
		{"zero rates", "999.99", "0", "0", "0", "0", "1000", "0.01"},
		{"zero subtotal", "0", "9", "9", "0", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gst.ComputeTotals(dec(tt.subtotal), dec(tt.cgst), dec(tt.sgst), dec(tt.igst))
			assert.True(t, dec(tt.wantTax).Equal(got.TaxAmount),
				"tax: want %s got %s", tt.wantTax, got.TaxAmount)
			assert.True(t, dec(tt.wantGrand).Equal(got.GrandTotal),
				"grand total: want %s got %s", tt.wantGrand, got.GrandTotal)
			assert.True(t, dec(tt.wantRoundOff).Equal(got.RoundOff),
				"round-off: want %s got %s", tt.wantRoundOff, got.RoundOff)
		})
	}
}

// A raw total ending in exactly .50 must round away from zero, not to even.
func TestComputeTotals_HalfRoundsAwayFromZero(t *testing.T) {
	// 1234.50 subtotal with zero rates: raw total is exactly 1234.50.
	got := gst.ComputeTotals(dec("1234.50"), decimal.Zero, decimal.Zero, decimal.Zero)
	require.True(t, dec("1235").Equal(got.GrandTotal), "1234.50 must round to 1235, got %s", got.GrandTotal)
	assert.True(t, dec("0.50").Equal(got.RoundOff))
}

func TestComputeTotals_Pure(t *testing.T) {
	a := gst.ComputeTotals(dec("1234.30"), dec("9"), dec("9"), dec("0"))
	b := gst.ComputeTotals(dec("1234.30"), dec("9"), dec("9"), dec("0"))
	assert.True(t, a.TaxAmount.Equal(b.TaxAmount))
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal))
	assert.True(t, a.RoundOff.Equal(b.RoundOff))
}

// For any valid input the grand total is whole and the round-off sits in
// (-0.5, 0.5].
func TestComputeTotals_Properties(t *testing.T) {
	subtotals := []string{"0", "0.01", "1", "99.49", "99.50", "100.51", "1234.30", "50000", "987654.32"}
	rates := []string{"0", "2.5", "6", "9", "14", "18", "28"}

	for _, s := range subtotals {
		for _, r := range rates {
			name := fmt.Sprintf("subtotal=%s rate=%s", s, r)
			t.Run(name, func(t *testing.T) {
				got := gst.ComputeTotals(dec(s), dec(r), dec(r), decimal.Zero)

				assert.True(t, got.GrandTotal.Equal(got.GrandTotal.Truncate(0)),
					"grand total %s is not a whole unit", got.GrandTotal)
				assert.True(t, got.RoundOff.GreaterThan(dec("-0.5")),
					"round-off %s out of range", got.RoundOff)
				assert.True(t, got.RoundOff.LessThanOrEqual(dec("0.5")),
					"round-off %s out of range", got.RoundOff)

				raw := dec(s).Add(got.TaxAmount)
				assert.True(t, raw.Add(got.RoundOff).Equal(got.GrandTotal),
					"raw + round-off must equal grand total")
			})
		}
	}
}
