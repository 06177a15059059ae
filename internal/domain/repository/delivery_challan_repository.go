package repository

import (
	"time"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
)

// DeliveryChallanRepository is the persistence port for delivery challans.
type DeliveryChallanRepository interface {
	GetAll() ([]*entity.DeliveryChallan, error)
	GetByID(dcID int64) (*entity.DeliveryChallan, error)
	Create(dc *entity.DeliveryChallan) (int64, error)
	CreateItem(item *entity.DeliveryChallanItem) error
	SoftDelete(dcID int64) error
	NextDcNumber() (string, error)
	GetByDateRange(from, to time.Time) ([]*entity.DeliveryChallan, error)
}
