package repository

import (
	"time"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
)

// QuotationRepository is the persistence port for quotations.
type QuotationRepository interface {
	GetAll() ([]*entity.Quotation, error)
	GetByID(quotationID int64) (*entity.Quotation, error)
	Create(q *entity.Quotation) (int64, error)
	CreateItem(item *entity.QuotationItem) error
	SoftDelete(quotationID int64) error
	NextQuotationNo() (string, error)
	GetByDateRange(from, to time.Time) ([]*entity.Quotation, error)
}
