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

var _ repository.DeliveryChallanRepository = (*DeliveryChallanRepo)(nil)

const challanColumns = `d.id, d.dc_number, d.dc_date, d.customer_id, d.target_company,
	d.vehicle_no, d.is_deleted, d.created_at, d.created_by_user_id, c.customer_name`

// DeliveryChallanRepo implements DeliveryChallanRepository over PostgreSQL
// (pool or tx).
type DeliveryChallanRepo struct {
	q Querier
}

// NewDeliveryChallanRepository builds the adapter. Pass a pool or tx (Querier).
func NewDeliveryChallanRepository(q Querier) *DeliveryChallanRepo {
	return &DeliveryChallanRepo{q: q}
}

func scanChallan(row pgx.Row) (*entity.DeliveryChallan, error) {
	var dc entity.DeliveryChallan
	err := row.Scan(
		&dc.ID, &dc.DcNumber, &dc.DcDate, &dc.CustomerID, &dc.TargetCompany,
		&dc.VehicleNo, &dc.IsDeleted, &dc.CreatedAt, &dc.CreatedByUserID, &dc.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// GetAll lists non-deleted challans, newest first.
func (r *DeliveryChallanRepo) GetAll() ([]*entity.DeliveryChallan, error) {
	query := `SELECT ` + challanColumns + `
		FROM delivery_challans d
		JOIN customers c ON c.id = d.customer_id
		WHERE NOT d.is_deleted
		ORDER BY d.dc_date DESC, d.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list challans: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryChallan
	for rows.Next() {
		dc, err := scanChallan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challan: %w", err)
		}
		list = append(list, dc)
	}
	return list, rows.Err()
}

// GetByID fetches one challan with its non-deleted items.
func (r *DeliveryChallanRepo) GetByID(dcID int64) (*entity.DeliveryChallan, error) {
	query := `SELECT ` + challanColumns + `
		FROM delivery_challans d
		JOIN customers c ON c.id = d.customer_id
		WHERE d.id = $1`
	dc, err := scanChallan(r.q.QueryRow(context.Background(), query, dcID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get challan: %w", err)
	}

	itemRows, err := r.q.Query(context.Background(), `
		SELECT id, dc_id, sl_no, description, quantity, unit, remarks, is_deleted
		FROM dc_items WHERE dc_id = $1 AND NOT is_deleted ORDER BY sl_no`, dcID)
	if err != nil {
		return nil, fmt.Errorf("list challan items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.DeliveryChallanItem
		if err := itemRows.Scan(&it.ID, &it.DcID, &it.SlNo, &it.Description,
			&it.Quantity, &it.Unit, &it.Remarks, &it.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan challan item: %w", err)
		}
		dc.Items = append(dc.Items, &it)
	}
	return dc, itemRows.Err()
}

// Create persists a new challan header and returns its id.
func (r *DeliveryChallanRepo) Create(dc *entity.DeliveryChallan) (int64, error) {
	query := `
		INSERT INTO delivery_challans (dc_number, dc_date, customer_id, target_company,
			vehicle_no, is_deleted, created_at, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		dc.DcNumber, dc.DcDate, dc.CustomerID, dc.TargetCompany,
		dc.VehicleNo, dc.CreatedAt, dc.CreatedByUserID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert challan: %w", err)
	}
	return id, nil
}

// CreateItem persists one challan line.
func (r *DeliveryChallanRepo) CreateItem(item *entity.DeliveryChallanItem) error {
	query := `
		INSERT INTO dc_items (dc_id, sl_no, description, quantity, unit, remarks, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.DcID, item.SlNo, item.Description, item.Quantity, item.Unit, item.Remarks,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert challan item: %w", err)
	}
	return nil
}

// SoftDelete marks a challan deleted.
func (r *DeliveryChallanRepo) SoftDelete(dcID int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE delivery_challans SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, dcID)
	if err != nil {
		return fmt.Errorf("soft delete challan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextDcNumber returns the next SIM/DC/xxxx number.
func (r *DeliveryChallanRepo) NextDcNumber() (string, error) {
	var lastSeq int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(CAST(SUBSTRING(dc_number FROM 8) AS INT)), 0)
		 FROM delivery_challans WHERE dc_number ~ '^SIM/DC/[0-9]+$'`,
	).Scan(&lastSeq)
	if err != nil {
		return "", fmt.Errorf("next dc number: %w", err)
	}
	return fmt.Sprintf("SIM/DC/%04d", lastSeq+1), nil
}

// GetByDateRange lists non-deleted challans within [from, to].
func (r *DeliveryChallanRepo) GetByDateRange(from, to time.Time) ([]*entity.DeliveryChallan, error) {
	query := `SELECT ` + challanColumns + `
		FROM delivery_challans d
		JOIN customers c ON c.id = d.customer_id
		WHERE NOT d.is_deleted AND d.dc_date BETWEEN $1 AND $2
		ORDER BY d.dc_date, d.id`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list challans by date: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryChallan
	for rows.Next() {
		dc, err := scanChallan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challan: %w", err)
		}
		list = append(list, dc)
	}
	return list, rows.Err()
}
