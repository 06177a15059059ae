package repository

import "github.com/simindustries/bizdocs-api/internal/domain/entity"

// CustomerRepository is the persistence port for customers and the GST state master.
type CustomerRepository interface {
	GetAll() ([]*entity.Customer, error)
	GetByID(customerID int64) (*entity.Customer, error)
	Create(customer *entity.Customer) (int64, error)
	Update(customer *entity.Customer) error
	// SoftDelete marks the customer inactive; it stays referenced by old documents.
	SoftDelete(customerID int64) error
	CodeExists(customerCode string, excludeCustomerID int64) (bool, error)
	GetAllStates() ([]*entity.IndianState, error)
}
