package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `v.id, v.po_id, v.invoice_number, v.invoice_date, v.total_amount,
	v.cgst_percent, v.sgst_percent, v.igst_percent, v.tax_amount, v.round_off, v.grand_total,
	v.shipping_address, v.freight_amount, v.contact_name, v.contact_no, v.vehicle_no,
	v.sim_dc_no, v.your_dc_no, v.remarks, v.is_paid, v.is_deleted, v.created_at,
	p.po_number, p.internal_code, p.customer_id, c.customer_name,
	COALESCE((SELECT SUM(ii.quantity) FROM invoice_items ii WHERE ii.invoice_id = v.id), 0)`

const invoiceJoins = `
	FROM invoices v
	JOIN purchase_orders p ON p.id = v.po_id
	JOIN customers c ON c.id = p.customer_id`

// InvoiceRepo implements InvoiceRepository over PostgreSQL (pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.PoID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.TotalAmount,
		&inv.CgstPercent, &inv.SgstPercent, &inv.IgstPercent, &inv.TaxAmount, &inv.RoundOff, &inv.GrandTotal,
		&inv.ShippingAddress, &inv.FreightAmount, &inv.ContactName, &inv.ContactNo, &inv.VehicleNo,
		&inv.SimDcNo, &inv.YourDcNo, &inv.Remarks, &inv.IsPaid, &inv.IsDeleted, &inv.CreatedAt,
		&inv.PoNumber, &inv.InternalCode, &inv.CustomerID, &inv.CustomerName,
		&inv.TotalQuantity,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetAll lists non-deleted invoices, newest first.
func (r *InvoiceRepo) GetAll() ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + invoiceJoins + `
		WHERE NOT v.is_deleted
		ORDER BY v.invoice_date DESC, v.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// GetPaged returns one page of the register plus count, amount and quantity
// aggregated over the whole filtered set. The search term matches the invoice
// number, the PO number, the internal code and the customer name.
func (r *InvoiceRepo) GetPaged(filter repository.InvoiceFilter) (*repository.InvoicePage, error) {
	where := []string{"NOT v.is_deleted"}
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"(v.invoice_number ILIKE %[1]s OR p.po_number ILIKE %[1]s OR p.internal_code ILIKE %[1]s OR c.customer_name ILIKE %[1]s)", p))
	}
	if filter.FromDate != nil {
		where = append(where, "v.invoice_date >= "+arg(*filter.FromDate))
	}
	if filter.ToDate != nil {
		where = append(where, "v.invoice_date <= "+arg(*filter.ToDate))
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	page := &repository.InvoicePage{}
	aggQuery := `
		SELECT COUNT(*),
			COALESCE(SUM(v.grand_total), 0),
			COALESCE(SUM((SELECT COALESCE(SUM(ii.quantity), 0) FROM invoice_items ii WHERE ii.invoice_id = v.id)), 0)` +
		invoiceJoins + whereClause
	err := r.q.QueryRow(context.Background(), aggQuery, args...).Scan(
		&page.TotalCount, &page.TotalAmount, &page.TotalQuantity)
	if err != nil {
		return nil, fmt.Errorf("invoice aggregates: %w", err)
	}

	limit := arg(filter.PageSize)
	offset := arg((filter.Page - 1) * filter.PageSize)
	listQuery := `SELECT ` + invoiceColumns + invoiceJoins + whereClause + `
		ORDER BY v.invoice_date DESC, v.id DESC
		LIMIT ` + limit + ` OFFSET ` + offset
	rows, err := r.q.Query(context.Background(), listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("page invoices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		page.Invoices = append(page.Invoices, inv)
	}
	return page, rows.Err()
}

// GetByID fetches one invoice header.
func (r *InvoiceRepo) GetByID(invoiceID int64) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + invoiceJoins + ` WHERE v.id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByIDWithItems fetches one invoice with its lines, description and HSN
// joined from the purchase-order items.
func (r *InvoiceRepo) GetByIDWithItems(invoiceID int64) (*entity.Invoice, error) {
	inv, err := r.GetByID(invoiceID)
	if err != nil || inv == nil {
		return inv, err
	}
	inv.Items, err = r.itemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepo) itemsByInvoiceID(invoiceID int64) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT ii.id, ii.invoice_id, ii.po_item_id, ii.quantity, ii.unit_price, ii.line_amount,
			pi.item_description, pi.hsn_code, pi.quantity
		FROM invoice_items ii
		JOIN po_items pi ON pi.id = ii.po_item_id
		WHERE ii.invoice_id = $1
		ORDER BY pi.line_number`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.PoItemID, &it.Quantity, &it.UnitPrice, &it.LineAmount,
			&it.ItemDescription, &it.HsnCode, &it.OrderedQuantity); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// GetByPoID lists non-deleted invoices raised against one order.
func (r *InvoiceRepo) GetByPoID(poID int64) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + invoiceJoins + `
		WHERE v.po_id = $1 AND NOT v.is_deleted
		ORDER BY v.invoice_date, v.id`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by po: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Create persists a new invoice header and returns its id.
func (r *InvoiceRepo) Create(inv *entity.Invoice) (int64, error) {
	query := `
		INSERT INTO invoices (po_id, invoice_number, invoice_date, total_amount,
			cgst_percent, sgst_percent, igst_percent, tax_amount, round_off, grand_total,
			shipping_address, freight_amount, contact_name, contact_no, vehicle_no,
			sim_dc_no, your_dc_no, remarks, is_paid, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, FALSE, FALSE, $19)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		inv.PoID, inv.InvoiceNumber, inv.InvoiceDate, inv.TotalAmount,
		inv.CgstPercent, inv.SgstPercent, inv.IgstPercent, inv.TaxAmount, inv.RoundOff, inv.GrandTotal,
		inv.ShippingAddress, inv.FreightAmount, inv.ContactName, inv.ContactNo, inv.VehicleNo,
		inv.SimDcNo, inv.YourDcNo, inv.Remarks, inv.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	return id, nil
}

// CreateItem persists one invoiced line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, po_item_id, quantity, unit_price, line_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.InvoiceID, item.PoItemID, item.Quantity, item.UnitPrice, item.LineAmount,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// Update rewrites the invoice header. Items are immutable once issued.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET invoice_number = $2, invoice_date = $3, tax_amount = $4,
			round_off = $5, grand_total = $6, shipping_address = $7, freight_amount = $8,
			contact_name = $9, contact_no = $10, vehicle_no = $11, sim_dc_no = $12,
			your_dc_no = $13, remarks = $14, is_paid = $15
		WHERE id = $1 AND NOT is_deleted`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.InvoiceNumber, inv.InvoiceDate, inv.TaxAmount,
		inv.RoundOff, inv.GrandTotal, inv.ShippingAddress, inv.FreightAmount,
		inv.ContactName, inv.ContactNo, inv.VehicleNo, inv.SimDcNo,
		inv.YourDcNo, inv.Remarks, inv.IsPaid,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks an invoice deleted. Its quantities drop out of every
// invoiced-quantity aggregate from then on.
func (r *InvoiceRepo) SoftDelete(invoiceID int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, invoiceID)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NumberExists reports whether another non-deleted invoice uses the number.
func (r *InvoiceRepo) NumberExists(invoiceNumber string, excludeInvoiceID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_number = $1 AND id <> $2 AND NOT is_deleted)`,
		invoiceNumber, excludeInvoiceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invoice number: %w", err)
	}
	return exists, nil
}

// NextInvoiceNumber returns the next SIMINVxxxx number. Deleted invoices keep
// their numbers, so the sequence never reuses one.
func (r *InvoiceRepo) NextInvoiceNumber() (string, error) {
	var lastSeq int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM 7) AS INT)), 0)
		 FROM invoices WHERE invoice_number ~ '^SIMINV[0-9]+$'`,
	).Scan(&lastSeq)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("SIMINV%04d", lastSeq+1), nil
}

// UnpaidCount counts non-deleted unpaid invoices.
func (r *InvoiceRepo) UnpaidCount() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE NOT is_paid AND NOT is_deleted`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unpaid count: %w", err)
	}
	return count, nil
}
