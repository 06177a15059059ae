package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, customer_code, customer_name, address_line1, address_line2, city,
	state, state_code, pincode, contact_number, email, gst_number,
	default_cgst_percent, default_sgst_percent, default_igst_percent,
	is_active, created_at, created_by_user_id`

// CustomerRepo implements CustomerRepository over PostgreSQL (pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass a pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CustomerCode, &c.CustomerName, &c.AddressLine1, &c.AddressLine2, &c.City,
		&c.State, &c.StateCode, &c.Pincode, &c.ContactNumber, &c.Email, &c.GstNumber,
		&c.DefaultCgstPercent, &c.DefaultSgstPercent, &c.DefaultIgstPercent,
		&c.IsActive, &c.CreatedAt, &c.CreatedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll lists active customers ordered by name.
func (r *CustomerRepo) GetAll() ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers WHERE is_active ORDER BY customer_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID fetches one customer, active or not.
func (r *CustomerRepo) GetByID(customerID int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Create persists a new customer and returns its id.
func (r *CustomerRepo) Create(customer *entity.Customer) (int64, error) {
	query := `
		INSERT INTO customers (customer_code, customer_name, address_line1, address_line2, city,
			state, state_code, pincode, contact_number, email, gst_number,
			default_cgst_percent, default_sgst_percent, default_igst_percent,
			is_active, created_at, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		customer.CustomerCode, customer.CustomerName, customer.AddressLine1, customer.AddressLine2, customer.City,
		customer.State, customer.StateCode, customer.Pincode, customer.ContactNumber, customer.Email, customer.GstNumber,
		customer.DefaultCgstPercent, customer.DefaultSgstPercent, customer.DefaultIgstPercent,
		customer.IsActive, customer.CreatedAt, customer.CreatedByUserID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

// Update rewrites a customer.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET customer_code = $2, customer_name = $3, address_line1 = $4,
			address_line2 = $5, city = $6, state = $7, state_code = $8, pincode = $9,
			contact_number = $10, email = $11, gst_number = $12,
			default_cgst_percent = $13, default_sgst_percent = $14, default_igst_percent = $15
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.CustomerCode, customer.CustomerName, customer.AddressLine1,
		customer.AddressLine2, customer.City, customer.State, customer.StateCode, customer.Pincode,
		customer.ContactNumber, customer.Email, customer.GstNumber,
		customer.DefaultCgstPercent, customer.DefaultSgstPercent, customer.DefaultIgstPercent,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks a customer inactive.
func (r *CustomerRepo) SoftDelete(customerID int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE customers SET is_active = FALSE WHERE id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("deactivate customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CodeExists reports whether another customer already uses the code.
func (r *CustomerRepo) CodeExists(customerCode string, excludeCustomerID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM customers WHERE customer_code = $1 AND id <> $2)`,
		customerCode, excludeCustomerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer code: %w", err)
	}
	return exists, nil
}

// GetAllStates lists the GST state master.
func (r *CustomerRepo) GetAllStates() ([]*entity.IndianState, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, state_name, state_code FROM indian_states ORDER BY state_name`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()
	var list []*entity.IndianState
	for rows.Next() {
		var s entity.IndianState
		if err := rows.Scan(&s.ID, &s.StateName, &s.StateCode); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
