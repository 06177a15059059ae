package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
)

// InvoicePage is one page of the invoice register with its aggregate totals.
type InvoicePage struct {
	Invoices      []*entity.Invoice
	TotalCount    int
	TotalAmount   decimal.Decimal // sum of grand totals over the whole filter
	TotalQuantity int
}

// InvoiceFilter narrows the paged invoice register.
type InvoiceFilter struct {
	Search   string // matches invoice number, PO number, internal code, customer name
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}

// InvoiceRepository is the persistence port for invoices and their items.
type InvoiceRepository interface {
	GetAll() ([]*entity.Invoice, error)
	GetPaged(filter InvoiceFilter) (*InvoicePage, error)
	GetByID(invoiceID int64) (*entity.Invoice, error)
	GetByIDWithItems(invoiceID int64) (*entity.Invoice, error)
	GetByPoID(poID int64) ([]*entity.Invoice, error)
	Create(invoice *entity.Invoice) (int64, error)
	CreateItem(item *entity.InvoiceItem) error
	// Update rewrites the invoice header only; items are immutable once issued.
	Update(invoice *entity.Invoice) error
	SoftDelete(invoiceID int64) error
	NumberExists(invoiceNumber string, excludeInvoiceID int64) (bool, error)
	// NextInvoiceNumber returns the next SIMINVxxxx number in sequence.
	NextInvoiceNumber() (string, error)
	UnpaidCount() (int, error)
}
