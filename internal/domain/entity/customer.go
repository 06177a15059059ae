package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a billing customer. DefaultCgstPercent/SgstPercent/IgstPercent are
// the GST rates proposed when a purchase order is raised for this customer.
type Customer struct {
	ID                 int64
	CustomerCode       string // unique, user supplied
	CustomerName       string
	AddressLine1       string
	AddressLine2       string
	City               string
	State              string
	StateCode          string // GST state code, printed on invoices
	Pincode            string
	ContactNumber      string
	Email              string
	GstNumber          string
	DefaultCgstPercent decimal.Decimal
	DefaultSgstPercent decimal.Decimal
	DefaultIgstPercent decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
	CreatedByUserID    int64
}

// FullAddress joins the non-empty address parts for display and PDF rendering.
func (c *Customer) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IndianState is a GST state master row (state name + numeric GST code).
type IndianState struct {
	ID        int64
	StateName string
	StateCode string
}
