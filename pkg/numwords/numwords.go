// Package numwords spells out rupee amounts in the Indian numbering system
// (thousand, lakh, crore) for the amount-in-words line on printed documents.
package numwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// belowHundred spells 0..99.
func belowHundred(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}

// belowThousand spells 0..999.
func belowThousand(n int) string {
	if n < 100 {
		return belowHundred(n)
	}
	s := ones[n/100] + " Hundred"
	if n%100 != 0 {
		s += " " + belowHundred(n%100)
	}
	return s
}

// Words spells a non-negative integer in the Indian system, e.g.
// 1234567 -> "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven".
func Words(n int64) string {
	if n == 0 {
		return "Zero"
	}
	var parts []string
	add := func(v int64, unit string) {
		if v > 0 {
			s := belowThousand(int(v))
			if unit != "" {
				s += " " + unit
			}
			parts = append(parts, s)
		}
	}
	if crore := n / 10000000; crore > 0 {
		parts = append(parts, Words(crore)+" Crore")
	}
	add((n/100000)%100, "Lakh")
	add((n/1000)%100, "Thousand")
	add(n%1000, "")
	return strings.Join(parts, " ")
}

// RupeesInWords renders an amount as "Rupees ... and ... Paise Only". Whole
// rupee amounts omit the paise clause. Grand totals are whole rupees after
// round-off, so the paise clause only shows up on intermediate figures.
func RupeesInWords(amount decimal.Decimal) string {
	amount = amount.Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()
	if paise < 0 {
		paise = -paise
	}

	s := "Rupees " + Words(rupees)
	if paise > 0 {
		s += " and " + Words(paise) + " Paise"
	}
	return s + " Only"
}
