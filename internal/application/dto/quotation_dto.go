package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest is one line of a quotation form.
type QuotationItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// QuotationRequest creates a quotation.
type QuotationRequest struct {
	CustomerID int64                  `json:"customer_id"`
	Date       time.Time              `json:"date"`
	ValidUntil *time.Time             `json:"valid_until,omitempty"`
	Items      []QuotationItemRequest `json:"items"`
}

// QuotationItemResponse is one line of a quotation.
type QuotationItemResponse struct {
	ID          int64           `json:"id"`
	SlNo        int             `json:"sl_no"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// QuotationResponse is the public view of a quotation.
type QuotationResponse struct {
	ID           int64                   `json:"id"`
	QuotationNo  string                  `json:"quotation_no"`
	Date         time.Time               `json:"date"`
	ValidUntil   *time.Time              `json:"valid_until,omitempty"`
	CustomerID   int64                   `json:"customer_id"`
	CustomerName string                  `json:"customer_name,omitempty"`
	TotalAmount  decimal.Decimal         `json:"total_amount"`
	Items        []QuotationItemResponse `json:"items,omitempty"`
}
