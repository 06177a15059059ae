package dto

import "github.com/shopspring/decimal"

// CustomerRequest is the create/update form for a customer.
type CustomerRequest struct {
	CustomerCode       string          `json:"customer_code"`
	CustomerName       string          `json:"customer_name"`
	AddressLine1       string          `json:"address_line1"`
	AddressLine2       string          `json:"address_line2"`
	City               string          `json:"city"`
	State              string          `json:"state"`
	StateCode          string          `json:"state_code"`
	Pincode            string          `json:"pincode"`
	ContactNumber      string          `json:"contact_number"`
	Email              string          `json:"email"`
	GstNumber          string          `json:"gst_number"`
	DefaultCgstPercent decimal.Decimal `json:"default_cgst_percent"`
	DefaultSgstPercent decimal.Decimal `json:"default_sgst_percent"`
	DefaultIgstPercent decimal.Decimal `json:"default_igst_percent"`
}

// CustomerResponse is the public view of a customer.
type CustomerResponse struct {
	ID                 int64           `json:"id"`
	CustomerCode       string          `json:"customer_code"`
	CustomerName       string          `json:"customer_name"`
	AddressLine1       string          `json:"address_line1,omitempty"`
	AddressLine2       string          `json:"address_line2,omitempty"`
	City               string          `json:"city,omitempty"`
	State              string          `json:"state"`
	StateCode          string          `json:"state_code,omitempty"`
	Pincode            string          `json:"pincode,omitempty"`
	ContactNumber      string          `json:"contact_number,omitempty"`
	Email              string          `json:"email,omitempty"`
	GstNumber          string          `json:"gst_number,omitempty"`
	FullAddress        string          `json:"full_address"`
	DefaultCgstPercent decimal.Decimal `json:"default_cgst_percent"`
	DefaultSgstPercent decimal.Decimal `json:"default_sgst_percent"`
	DefaultIgstPercent decimal.Decimal `json:"default_igst_percent"`
}

// CustomerRefResponse is the lightweight row behind customer selection lists.
type CustomerRefResponse struct {
	ID           int64  `json:"id"`
	CustomerCode string `json:"customer_code"`
	CustomerName string `json:"customer_name"`
}

// StateResponse is one GST state master row.
type StateResponse struct {
	StateName string `json:"state_name"`
	StateCode string `json:"state_code"`
}
