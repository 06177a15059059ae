package reports

import (
	"context"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// ReportUseCase serves the dashboard summary and the pending quantity report.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase builds the use case.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Summary aggregates purchase orders and invoices for the dashboard.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.BusinessSummaryResponse, error) {
	s, err := uc.repo.BusinessSummary()
	if err != nil {
		return nil, err
	}
	return &dto.BusinessSummaryResponse{
		TotalPoAmount:       s.TotalPoAmount,
		TotalPoCount:        s.TotalPoCount,
		CompletedPoCount:    s.CompletedPoCount,
		PendingPoCount:      s.PendingPoCount,
		TotalInvoicedAmount: s.TotalInvoicedAmount,
		TotalInvoiceCount:   s.TotalInvoiceCount,
		PaidAmount:          s.PaidAmount,
		UnpaidAmount:        s.UnpaidAmount,
	}, nil
}

// PendingQuantities lists, per open order, how much of each line is still to
// be invoiced. Orders whose every line is fully invoiced are excluded.
func (uc *ReportUseCase) PendingQuantities(ctx context.Context) ([]*dto.PendingOrderResponse, error) {
	rows, err := uc.repo.PendingQuantities()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PendingOrderResponse, 0, len(rows))
	for _, po := range rows {
		resp := &dto.PendingOrderResponse{
			PoID:          po.PoID,
			InternalCode:  po.InternalCode,
			PoNumber:      po.PoNumber,
			CustomerName:  po.CustomerName,
			PoDate:        po.PoDate,
			TotalOrdered:  po.TotalOrderedQuantity,
			TotalInvoiced: po.TotalInvoicedQuantity,
			Items:         make([]dto.PendingItemDetailResponse, 0, len(po.ItemDetails)),
		}
		for _, it := range po.ItemDetails {
			pending := it.OrderedQuantity - it.InvoicedQuantity
			if pending < 0 {
				pending = 0
			}
			resp.Items = append(resp.Items, dto.PendingItemDetailResponse{
				PoItemID:         it.PoItemID,
				LineNumber:       it.LineNumber,
				ItemDescription:  it.ItemDescription,
				OrderedQuantity:  it.OrderedQuantity,
				InvoicedQuantity: it.InvoicedQuantity,
				PendingQuantity:  pending,
			})
			resp.TotalPending += pending
		}
		out = append(out, resp)
	}
	return out, nil
}
