package dto

import "time"

// ChallanItemRequest is one line of a delivery challan form. Challans carry
// no prices.
type ChallanItemRequest struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	Remarks     string `json:"remarks"`
}

// ChallanRequest creates a delivery challan. Challans are not tied to the
// order ledger; their quantities never affect pending quantities.
type ChallanRequest struct {
	CustomerID    int64                `json:"customer_id"`
	DcDate        time.Time            `json:"dc_date"`
	TargetCompany string               `json:"target_company"`
	VehicleNo     string               `json:"vehicle_no"`
	Items         []ChallanItemRequest `json:"items"`
}

// ChallanItemResponse is one line of a delivery challan.
type ChallanItemResponse struct {
	ID          int64  `json:"id"`
	SlNo        int    `json:"sl_no"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// ChallanResponse is the public view of a delivery challan.
type ChallanResponse struct {
	ID            int64                 `json:"id"`
	DcNumber      string                `json:"dc_number"`
	DcDate        time.Time             `json:"dc_date"`
	CustomerID    int64                 `json:"customer_id"`
	CustomerName  string                `json:"customer_name,omitempty"`
	TargetCompany string                `json:"target_company,omitempty"`
	VehicleNo     string                `json:"vehicle_no,omitempty"`
	Items         []ChallanItemResponse `json:"items,omitempty"`
}
