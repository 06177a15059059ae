package postgres

import (
	"context"
	"fmt"

	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo runs the cross-entity aggregate queries behind the reports.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the adapter. Pass a pool or tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// BusinessSummary aggregates order and invoice figures for the dashboard.
// All sums run over non-deleted rows only.
func (r *ReportRepo) BusinessSummary() (*repository.BusinessSummary, error) {
	var s repository.BusinessSummary
	query := `
		SELECT
			(SELECT COALESCE(SUM(po_amount), 0) FROM purchase_orders WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM purchase_orders WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM purchase_orders WHERE NOT is_deleted AND is_completed),
			(SELECT COUNT(*) FROM purchase_orders WHERE NOT is_deleted AND NOT is_completed),
			(SELECT COALESCE(SUM(grand_total), 0) FROM invoices WHERE NOT is_deleted),
			(SELECT COUNT(*) FROM invoices WHERE NOT is_deleted),
			(SELECT COALESCE(SUM(grand_total), 0) FROM invoices WHERE NOT is_deleted AND is_paid),
			(SELECT COALESCE(SUM(grand_total), 0) FROM invoices WHERE NOT is_deleted AND NOT is_paid)`
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalPoAmount, &s.TotalPoCount, &s.CompletedPoCount, &s.PendingPoCount,
		&s.TotalInvoicedAmount, &s.TotalInvoiceCount, &s.PaidAmount, &s.UnpaidAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("business summary: %w", err)
	}
	return &s, nil
}

// PendingQuantities returns, for each open order, its lines with ordered and
// invoiced quantities. Completed and deleted orders are excluded; invoiced
// quantities aggregate over non-deleted invoices only.
func (r *ReportRepo) PendingQuantities() ([]*repository.PendingQuantityPoSummary, error) {
	query := `
		SELECT p.id, p.internal_code, p.po_number, c.customer_name, p.po_date,
			i.id, i.line_number, i.item_description, i.quantity,
			COALESCE((
				SELECT SUM(ii.quantity)
				FROM invoice_items ii
				JOIN invoices inv ON inv.id = ii.invoice_id
				WHERE ii.po_item_id = i.id AND NOT inv.is_deleted
			), 0) AS invoiced
		FROM purchase_orders p
		JOIN customers c ON c.id = p.customer_id
		JOIN po_items i ON i.po_id = p.id AND NOT i.is_deleted
		WHERE NOT p.is_deleted AND NOT p.is_completed
		ORDER BY p.internal_code, i.line_number`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("pending quantities: %w", err)
	}
	defer rows.Close()

	var list []*repository.PendingQuantityPoSummary
	byPo := map[int64]*repository.PendingQuantityPoSummary{}
	for rows.Next() {
		var (
			po     repository.PendingQuantityPoSummary
			detail repository.PendingQuantityItemDetail
		)
		if err := rows.Scan(&po.PoID, &po.InternalCode, &po.PoNumber, &po.CustomerName, &po.PoDate,
			&detail.PoItemID, &detail.LineNumber, &detail.ItemDescription, &detail.OrderedQuantity,
			&detail.InvoicedQuantity); err != nil {
			return nil, fmt.Errorf("scan pending row: %w", err)
		}
		summary, ok := byPo[po.PoID]
		if !ok {
			summary = &po
			byPo[po.PoID] = summary
			list = append(list, summary)
		}
		summary.TotalOrderedQuantity += detail.OrderedQuantity
		summary.TotalInvoicedQuantity += detail.InvoicedQuantity
		summary.ItemDetails = append(summary.ItemDetails, detail)
	}
	return list, rows.Err()
}
