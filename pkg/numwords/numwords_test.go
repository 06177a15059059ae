package numwords_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simindustries/bizdocs-api/pkg/numwords"
)

func TestWords_IndianSystem(t *testing.T) {
	cases := map[int64]string{
		0:         "Zero",
		7:         "Seven",
		19:        "Nineteen",
		40:        "Forty",
		99:        "Ninety Nine",
		100:       "One Hundred",
		512:       "Five Hundred Twelve",
		1000:      "One Thousand",
		1456:      "One Thousand Four Hundred Fifty Six",
		100000:    "One Lakh",
		123456:    "One Lakh Twenty Three Thousand Four Hundred Fifty Six",
		10000000:  "One Crore",
		12345678:  "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight",
		120000000: "Twelve Crore",
	}
	for n, want := range cases {
		assert.Equal(t, want, numwords.Words(n), "n=%d", n)
	}
}

func TestRupeesInWords(t *testing.T) {
	assert.Equal(t, "Rupees One Thousand Four Hundred Fifty Six Only",
		numwords.RupeesInWords(decimal.NewFromInt(1456)))
	assert.Equal(t, "Rupees Ninety Nine and Fifty Paise Only",
		numwords.RupeesInWords(decimal.RequireFromString("99.50")))
	assert.Equal(t, "Rupees Zero Only",
		numwords.RupeesInWords(decimal.Zero))
}
