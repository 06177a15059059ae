package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationColumns = `q.id, q.quotation_no, q.date, q.valid_until, q.customer_id,
	q.is_deleted, q.created_at, q.created_by_user_id, c.customer_name`

// QuotationRepo implements QuotationRepository over PostgreSQL (pool or tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository builds the adapter. Pass a pool or tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.QuotationNo, &q.Date, &q.ValidUntil, &q.CustomerID,
		&q.IsDeleted, &q.CreatedAt, &q.CreatedByUserID, &q.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetAll lists non-deleted quotations, newest first.
func (r *QuotationRepo) GetAll() ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + `
		FROM quotations q
		JOIN customers c ON c.id = q.customer_id
		WHERE NOT q.is_deleted
		ORDER BY q.date DESC, q.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// GetByID fetches one quotation with its non-deleted items.
func (r *QuotationRepo) GetByID(quotationID int64) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + `
		FROM quotations q
		JOIN customers c ON c.id = q.customer_id
		WHERE q.id = $1`
	q, err := scanQuotation(r.q.QueryRow(context.Background(), query, quotationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	itemRows, err := r.q.Query(context.Background(), `
		SELECT id, quotation_id, sl_no, description, quantity, unit_price, total_amount, is_deleted
		FROM quotation_items WHERE quotation_id = $1 AND NOT is_deleted ORDER BY sl_no`, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.QuotationItem
		if err := itemRows.Scan(&it.ID, &it.QuotationID, &it.SlNo, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.TotalAmount, &it.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		q.Items = append(q.Items, &it)
	}
	return q, itemRows.Err()
}

// Create persists a new quotation header and returns its id.
func (r *QuotationRepo) Create(q *entity.Quotation) (int64, error) {
	query := `
		INSERT INTO quotations (quotation_no, date, valid_until, customer_id, is_deleted, created_at, created_by_user_id)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		q.QuotationNo, q.Date, q.ValidUntil, q.CustomerID, q.CreatedAt, q.CreatedByUserID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert quotation: %w", err)
	}
	return id, nil
}

// CreateItem persists one quoted line.
func (r *QuotationRepo) CreateItem(item *entity.QuotationItem) error {
	query := `
		INSERT INTO quotation_items (quotation_id, sl_no, description, quantity, unit_price, total_amount, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.QuotationID, item.SlNo, item.Description, item.Quantity, item.UnitPrice, item.TotalAmount,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert quotation item: %w", err)
	}
	return nil
}

// SoftDelete marks a quotation deleted.
func (r *QuotationRepo) SoftDelete(quotationID int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE quotations SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, quotationID)
	if err != nil {
		return fmt.Errorf("soft delete quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextQuotationNo returns the next SIM/QN/xxx/<fy> number. The sequence
// restarts each Indian financial year (April to March).
func (r *QuotationRepo) NextQuotationNo() (string, error) {
	fy := financialYearSuffix(time.Now())
	var lastSeq int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(CAST(SUBSTRING(quotation_no FROM 8 FOR 3) AS INT)), 0)
		 FROM quotations WHERE quotation_no LIKE 'SIM/QN/%/' || $1`, fy,
	).Scan(&lastSeq)
	if err != nil {
		return "", fmt.Errorf("next quotation number: %w", err)
	}
	return fmt.Sprintf("SIM/QN/%03d/%s", lastSeq+1, fy), nil
}

// financialYearSuffix renders the Indian FY as a four-digit pair, e.g. the
// year starting April 2025 is "2526".
func financialYearSuffix(now time.Time) string {
	start := now.Year()
	if now.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d%02d", start%100, (start+1)%100)
}

// GetByDateRange lists non-deleted quotations within [from, to].
func (r *QuotationRepo) GetByDateRange(from, to time.Time) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + `
		FROM quotations q
		JOIN customers c ON c.id = q.customer_id
		WHERE NOT q.is_deleted AND q.date BETWEEN $1 AND $2
		ORDER BY q.date, q.id`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list quotations by date: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
