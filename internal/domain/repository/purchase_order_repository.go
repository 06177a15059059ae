package repository

import (
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
)

// PurchaseOrderRef is the typed row behind the order dropdown (open orders only).
type PurchaseOrderRef struct {
	PoID         int64
	InternalCode string
	PoNumber     string
	CustomerName string
}

// PurchaseOrderRepository is the persistence port for purchase orders and
// their items. Implementations are usable against a pool or a transaction, so
// multi-statement flows (create-with-items, invoice + completion recompute)
// can run atomically through a TxRunner.
type PurchaseOrderRepository interface {
	GetAll() ([]*entity.PurchaseOrder, error)
	GetByID(poID int64) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate fetches the order header and takes a row lock on it.
	// Transactions that snapshot fulfillments before writing invoice rows or
	// replacing order items must use it so they serialize per order. Only
	// valid inside a transaction.
	GetByIDForUpdate(poID int64) (*entity.PurchaseOrder, error)
	GetByIDWithItems(poID int64) (*entity.PurchaseOrder, error)
	GetByIDWithInvoices(poID int64) (*entity.PurchaseOrder, error)
	Create(po *entity.PurchaseOrder) (int64, error)
	CreateItem(item *entity.PurchaseOrderItem) error
	Update(po *entity.PurchaseOrder) error
	// SoftDeleteItems marks all items of the order deleted; used by
	// edit-replace (followed by CreateItem calls in the same transaction).
	SoftDeleteItems(poID int64) error
	// SoftDelete cascades to the order's items.
	SoftDelete(poID int64) error
	NumberExists(poNumber string, excludePoID int64) (bool, error)
	// NextInternalCode returns the next SIMPOxxxx code in sequence.
	NextInternalCode() (string, error)
	DropdownList() ([]*PurchaseOrderRef, error)

	// ItemFulfillments returns the fulfillment snapshot of the order's
	// non-deleted items: ordered quantity plus invoiced quantity aggregated
	// over non-deleted invoices. Run against a transaction when the snapshot
	// guards an invoice insert.
	ItemFulfillments(poID int64) ([]ledger.ItemFulfillment, error)
	// SetCompleted persists the derived completion flag.
	SetCompleted(poID int64, completed bool) error
}
