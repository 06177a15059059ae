package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation is a priced offer sent to a customer (SIM/QN/xxx/2526 numbering).
type Quotation struct {
	ID              int64
	QuotationNo     string
	Date            time.Time
	ValidUntil      *time.Time
	CustomerID      int64
	IsDeleted       bool
	CreatedAt       time.Time
	CreatedByUserID int64

	CustomerName string
	Customer     *Customer
	Items        []*QuotationItem
}

// TotalAmount sums the non-deleted item amounts.
func (q *Quotation) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range q.Items {
		if !it.IsDeleted {
			total = total.Add(it.TotalAmount)
		}
	}
	return total
}

// QuotationItem is one quoted line.
type QuotationItem struct {
	ID          int64
	QuotationID int64
	SlNo        int
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	IsDeleted   bool
}
