package entity

import "time"

// DeliveryChallan accompanies goods in transit (SIM/DC/xxxx numbering).
type DeliveryChallan struct {
	ID              int64
	DcNumber        string
	DcDate          time.Time
	CustomerID      int64
	TargetCompany   string
	VehicleNo       string
	IsDeleted       bool
	CreatedAt       time.Time
	CreatedByUserID int64

	CustomerName string
	Customer     *Customer
	Items        []*DeliveryChallanItem
}

// DeliveryChallanItem is one dispatched line. Challans carry no prices.
type DeliveryChallanItem struct {
	ID          int64
	DcID        int64
	SlNo        int
	Description string
	Quantity    int
	Unit        string // "NO", "SET", "KG", ...
	Remarks     string
	IsDeleted   bool
}
