package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `p.id, p.po_number, p.internal_code, p.customer_id, p.po_amount,
	p.cgst_percent, p.sgst_percent, p.igst_percent, p.po_date, p.start_date, p.end_date,
	p.is_completed, p.is_deleted, p.created_at, p.created_by_user_id, c.customer_name`

// PurchaseOrderRepo implements PurchaseOrderRepository over PostgreSQL
// (pool or tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the adapter. Pass a pool or tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(
		&po.ID, &po.PoNumber, &po.InternalCode, &po.CustomerID, &po.PoAmount,
		&po.CgstPercent, &po.SgstPercent, &po.IgstPercent, &po.PoDate, &po.StartDate, &po.EndDate,
		&po.IsCompleted, &po.IsDeleted, &po.CreatedAt, &po.CreatedByUserID, &po.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// GetAll lists non-deleted orders, newest first.
func (r *PurchaseOrderRepo) GetAll() ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + `
		FROM purchase_orders p
		JOIN customers c ON c.id = p.customer_id
		WHERE NOT p.is_deleted
		ORDER BY p.po_date DESC, p.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// GetByID fetches one order header.
func (r *PurchaseOrderRepo) GetByID(poID int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + `
		FROM purchase_orders p
		JOIN customers c ON c.id = p.customer_id
		WHERE p.id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, poID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// GetByIDForUpdate fetches one order header with FOR UPDATE, so concurrent
// transactions that snapshot the order's fulfillments before writing block on
// each other instead of both reading a stale snapshot. Only meaningful when
// the repo is bound to a transaction.
func (r *PurchaseOrderRepo) GetByIDForUpdate(poID int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + `
		FROM purchase_orders p
		JOIN customers c ON c.id = p.customer_id
		WHERE p.id = $1
		FOR UPDATE OF p`
	po, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, poID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock purchase order: %w", err)
	}
	return po, nil
}

// GetByIDWithItems fetches one order with its non-deleted items.
func (r *PurchaseOrderRepo) GetByIDWithItems(poID int64) (*entity.PurchaseOrder, error) {
	po, err := r.GetByID(poID)
	if err != nil || po == nil {
		return po, err
	}
	po.Items, err = r.itemsByPoID(poID)
	if err != nil {
		return nil, err
	}
	return po, nil
}

// GetByIDWithInvoices fetches one order with its items and the non-deleted
// invoices raised against it.
func (r *PurchaseOrderRepo) GetByIDWithInvoices(poID int64) (*entity.PurchaseOrder, error) {
	po, err := r.GetByIDWithItems(poID)
	if err != nil || po == nil {
		return po, err
	}
	po.Invoices, err = NewInvoiceRepository(r.q).GetByPoID(poID)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) itemsByPoID(poID int64) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_id, line_number, item_description, hsn_code, quantity, unit_price, line_total, is_deleted
		FROM po_items
		WHERE po_id = $1 AND NOT is_deleted
		ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list po items: %w", err)
	}
	defer rows.Close()
	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PoID, &it.LineNumber, &it.ItemDescription, &it.HsnCode,
			&it.Quantity, &it.UnitPrice, &it.LineTotal, &it.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan po item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Create persists a new order header and returns its id.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) (int64, error) {
	query := `
		INSERT INTO purchase_orders (po_number, internal_code, customer_id, po_amount,
			cgst_percent, sgst_percent, igst_percent, po_date, start_date, end_date,
			is_completed, is_deleted, created_at, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, FALSE, $11, $12)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		po.PoNumber, po.InternalCode, po.CustomerID, po.PoAmount,
		po.CgstPercent, po.SgstPercent, po.IgstPercent, po.PoDate, po.StartDate, po.EndDate,
		po.CreatedAt, po.CreatedByUserID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert purchase order: %w", err)
	}
	return id, nil
}

// CreateItem persists one order line.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO po_items (po_id, line_number, item_description, hsn_code, quantity, unit_price, line_total, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.PoID, item.LineNumber, item.ItemDescription, item.HsnCode,
		item.Quantity, item.UnitPrice, item.LineTotal,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert po item: %w", err)
	}
	return nil
}

// Update rewrites the order header.
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET po_number = $2, customer_id = $3, po_amount = $4,
			cgst_percent = $5, sgst_percent = $6, igst_percent = $7,
			po_date = $8, start_date = $9, end_date = $10
		WHERE id = $1 AND NOT is_deleted`
	tag, err := r.q.Exec(context.Background(), query,
		po.ID, po.PoNumber, po.CustomerID, po.PoAmount,
		po.CgstPercent, po.SgstPercent, po.IgstPercent,
		po.PoDate, po.StartDate, po.EndDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDeleteItems marks all lines of the order deleted, ahead of an
// edit-replace that inserts the new set in the same transaction.
func (r *PurchaseOrderRepo) SoftDeleteItems(poID int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE po_items SET is_deleted = TRUE WHERE po_id = $1 AND NOT is_deleted`, poID)
	if err != nil {
		return fmt.Errorf("soft delete po items: %w", err)
	}
	return nil
}

// SoftDelete marks an order deleted, cascading to its items.
func (r *PurchaseOrderRepo) SoftDelete(poID int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, poID)
	if err != nil {
		return fmt.Errorf("soft delete purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.SoftDeleteItems(poID)
}

// NumberExists reports whether another non-deleted order already uses the
// customer PO number.
func (r *PurchaseOrderRepo) NumberExists(poNumber string, excludePoID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE po_number = $1 AND id <> $2 AND NOT is_deleted)`,
		poNumber, excludePoID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check po number: %w", err)
	}
	return exists, nil
}

// NextInternalCode returns the next SIMPOxxxx code. Deleted orders keep their
// codes, so the sequence never reuses one.
func (r *PurchaseOrderRepo) NextInternalCode() (string, error) {
	var lastSeq int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(CAST(SUBSTRING(internal_code FROM 6) AS INT)), 0)
		FROM purchase_orders
		WHERE internal_code ~ '^SIMPO[0-9]+$'`,
	).Scan(&lastSeq)
	if err != nil {
		return "", fmt.Errorf("next internal code: %w", err)
	}
	return fmt.Sprintf("SIMPO%04d", lastSeq+1), nil
}

// DropdownList returns open (not completed, not deleted) orders as refs.
func (r *PurchaseOrderRepo) DropdownList() ([]*repository.PurchaseOrderRef, error) {
	query := `
		SELECT p.id, p.internal_code, p.po_number, c.customer_name
		FROM purchase_orders p
		JOIN customers c ON c.id = p.customer_id
		WHERE NOT p.is_deleted AND NOT p.is_completed
		ORDER BY p.internal_code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list po dropdown: %w", err)
	}
	defer rows.Close()
	var list []*repository.PurchaseOrderRef
	for rows.Next() {
		var ref repository.PurchaseOrderRef
		if err := rows.Scan(&ref.PoID, &ref.InternalCode, &ref.PoNumber, &ref.CustomerName); err != nil {
			return nil, fmt.Errorf("scan po ref: %w", err)
		}
		list = append(list, &ref)
	}
	return list, rows.Err()
}

// ItemFulfillments returns the fulfillment snapshot of the order's non-deleted
// lines. The invoiced quantity aggregates invoice items over non-deleted
// invoices only. Run against a transaction when the snapshot guards an insert.
func (r *PurchaseOrderRepo) ItemFulfillments(poID int64) ([]ledger.ItemFulfillment, error) {
	query := `
		SELECT i.id, i.line_number, i.item_description, i.hsn_code, i.unit_price, i.quantity,
			COALESCE((
				SELECT SUM(ii.quantity)
				FROM invoice_items ii
				JOIN invoices inv ON inv.id = ii.invoice_id
				WHERE ii.po_item_id = i.id AND NOT inv.is_deleted
			), 0) AS invoiced
		FROM po_items i
		WHERE i.po_id = $1 AND NOT i.is_deleted
		ORDER BY i.line_number`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("item fulfillments: %w", err)
	}
	defer rows.Close()
	var list []ledger.ItemFulfillment
	for rows.Next() {
		var f ledger.ItemFulfillment
		if err := rows.Scan(&f.PoItemID, &f.LineNumber, &f.ItemDescription, &f.HsnCode,
			&f.UnitPrice, &f.Ordered, &f.Invoiced); err != nil {
			return nil, fmt.Errorf("scan fulfillment: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// SetCompleted persists the derived completion flag.
func (r *PurchaseOrderRepo) SetCompleted(poID int64, completed bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET is_completed = $2 WHERE id = $1`, poID, completed)
	if err != nil {
		return fmt.Errorf("set completed: %w", err)
	}
	return nil
}
