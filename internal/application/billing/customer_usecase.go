package billing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CustomerUseCase manages the customer master and the GST state list.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func validateCustomer(in *dto.CustomerRequest) error {
	in.CustomerCode = strings.TrimSpace(in.CustomerCode)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	ve := &domain.ValidationError{}
	if in.CustomerCode == "" {
		ve.Add("customer_code", "customer code is required")
	}
	if in.CustomerName == "" {
		ve.Add("customer_name", "customer name is required")
	}
	if in.State == "" {
		ve.Add("state", "state is required")
	}
	for field, pct := range map[string]decimal.Decimal{
		"default_cgst_percent": in.DefaultCgstPercent,
		"default_sgst_percent": in.DefaultSgstPercent,
		"default_igst_percent": in.DefaultIgstPercent,
	} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			ve.Add(field, "GST percentage must be between 0 and 100")
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Create adds a customer. The customer code must be unique across active and
// inactive customers.
func (uc *CustomerUseCase) Create(ctx context.Context, userID int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomer(&in); err != nil {
		return nil, err
	}
	exists, err := uc.repo.CodeExists(in.CustomerCode, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	customer := customerFromRequest(&in)
	customer.IsActive = true
	customer.CreatedAt = time.Now()
	customer.CreatedByUserID = userID
	id, err := uc.repo.Create(customer)
	if err != nil {
		return nil, err
	}
	customer.ID = id
	return toCustomerResponse(customer), nil
}

// Update rewrites a customer. Changing the default GST rates does not touch
// orders or invoices already raised for this customer.
func (uc *CustomerUseCase) Update(ctx context.Context, customerID int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomer(&in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.CodeExists(in.CustomerCode, customerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	customer := customerFromRequest(&in)
	customer.ID = customerID
	customer.IsActive = existing.IsActive
	customer.CreatedAt = existing.CreatedAt
	customer.CreatedByUserID = existing.CreatedByUserID
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List returns all active customers.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	customers, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Get returns one customer.
func (uc *CustomerUseCase) Get(ctx context.Context, customerID int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Delete marks a customer inactive. Existing documents keep referencing it.
func (uc *CustomerUseCase) Delete(ctx context.Context, customerID int64) error {
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(customerID)
}

// Dropdown returns active customers as labelled references for selection lists.
func (uc *CustomerUseCase) Dropdown(ctx context.Context) ([]*dto.CustomerRefResponse, error) {
	customers, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerRefResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, &dto.CustomerRefResponse{
			ID:           c.ID,
			CustomerCode: c.CustomerCode,
			CustomerName: c.CustomerName,
		})
	}
	return out, nil
}

// States returns the GST state master for dropdowns.
func (uc *CustomerUseCase) States(ctx context.Context) ([]*dto.StateResponse, error) {
	states, err := uc.repo.GetAllStates()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StateResponse, 0, len(states))
	for _, s := range states {
		out = append(out, &dto.StateResponse{StateName: s.StateName, StateCode: s.StateCode})
	}
	return out, nil
}

func customerFromRequest(in *dto.CustomerRequest) *entity.Customer {
	return &entity.Customer{
		CustomerCode:       in.CustomerCode,
		CustomerName:       in.CustomerName,
		AddressLine1:       in.AddressLine1,
		AddressLine2:       in.AddressLine2,
		City:               in.City,
		State:              in.State,
		StateCode:          in.StateCode,
		Pincode:            in.Pincode,
		ContactNumber:      in.ContactNumber,
		Email:              in.Email,
		GstNumber:          in.GstNumber,
		DefaultCgstPercent: in.DefaultCgstPercent,
		DefaultSgstPercent: in.DefaultSgstPercent,
		DefaultIgstPercent: in.DefaultIgstPercent,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                 c.ID,
		CustomerCode:       c.CustomerCode,
		CustomerName:       c.CustomerName,
		AddressLine1:       c.AddressLine1,
		AddressLine2:       c.AddressLine2,
		City:               c.City,
		State:              c.State,
		StateCode:          c.StateCode,
		Pincode:            c.Pincode,
		ContactNumber:      c.ContactNumber,
		Email:              c.Email,
		GstNumber:          c.GstNumber,
		FullAddress:        c.FullAddress(),
		DefaultCgstPercent: c.DefaultCgstPercent,
		DefaultSgstPercent: c.DefaultSgstPercent,
		DefaultIgstPercent: c.DefaultIgstPercent,
	}
}
