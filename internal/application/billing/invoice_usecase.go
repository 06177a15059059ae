package billing

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/gst"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// InvoiceUseCase raises, edits and deletes GST invoices against purchase
// orders. Creation and deletion run through the transaction runner because
// they move the order ledger; header edits do not.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	poRepo       repository.PurchaseOrderRepository
	customerRepo repository.CustomerRepository
	pdfGen       InvoicePDFGenerator
	company      entity.CompanyProfile
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	poRepo repository.PurchaseOrderRepository,
	customerRepo repository.CustomerRepository,
	pdfGen InvoicePDFGenerator,
	company entity.CompanyProfile,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		poRepo:       poRepo,
		customerRepo: customerRepo,
		pdfGen:       pdfGen,
		company:      company,
	}
}

// Create raises an invoice against a purchase order. The transaction first
// locks the order row, then snapshots fulfillments, validates, inserts and
// recomputes completion. The lock serializes concurrent invoices against the
// same order, so the pending quantity can never go negative.
//
// GST rates are copied from the order and frozen on the invoice. The grand
// total is rounded to a whole rupee, half away from zero, with the difference
// recorded in RoundOff.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceCreateRequest) (*dto.InvoiceResponse, error) {
	if in.PoID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	requested := make(map[int64]int, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity > 0 {
			requested[it.PoItemID] += it.Quantity
		}
	}

	var created *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetByIDForUpdate(in.PoID)
		if err != nil {
			return err
		}
		if po == nil || po.IsDeleted {
			return domain.ErrNotFound
		}

		fulfillments, err := poRepo.ItemFulfillments(po.ID)
		if err != nil {
			return err
		}
		if err := ledger.ValidateRequested(fulfillments, requested); err != nil {
			return err
		}

		number := in.InvoiceNumber
		if number == "" {
			number, err = invoiceRepo.NextInvoiceNumber()
			if err != nil {
				return err
			}
		} else {
			exists, err := invoiceRepo.NumberExists(number, 0)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicate
			}
		}

		// Billed lines follow the order's line numbering.
		sort.Slice(fulfillments, func(i, j int) bool {
			return fulfillments[i].LineNumber < fulfillments[j].LineNumber
		})
		subtotal := decimal.Zero
		items := make([]*entity.InvoiceItem, 0, len(requested))
		for _, f := range fulfillments {
			qty := requested[f.PoItemID]
			if qty == 0 {
				continue
			}
			lineAmount := decimal.NewFromInt(int64(qty)).Mul(f.UnitPrice)
			subtotal = subtotal.Add(lineAmount)
			items = append(items, &entity.InvoiceItem{
				PoItemID:        f.PoItemID,
				Quantity:        qty,
				UnitPrice:       f.UnitPrice,
				LineAmount:      lineAmount,
				ItemDescription: f.ItemDescription,
				HsnCode:         f.HsnCode,
				OrderedQuantity: f.Ordered,
			})
		}

		totals := gst.ComputeTotals(subtotal, po.CgstPercent, po.SgstPercent, po.IgstPercent)

		inv := &entity.Invoice{
			PoID:            po.ID,
			InvoiceNumber:   number,
			InvoiceDate:     in.InvoiceDate,
			TotalAmount:     subtotal,
			CgstPercent:     po.CgstPercent,
			SgstPercent:     po.SgstPercent,
			IgstPercent:     po.IgstPercent,
			TaxAmount:       totals.TaxAmount,
			RoundOff:        totals.RoundOff,
			GrandTotal:      totals.GrandTotal,
			ShippingAddress: in.ShippingAddress,
			FreightAmount:   in.FreightAmount,
			ContactName:     in.ContactName,
			ContactNo:       in.ContactNo,
			VehicleNo:       in.VehicleNo,
			SimDcNo:         in.SimDcNo,
			YourDcNo:        in.YourDcNo,
			Remarks:         in.Remarks,
			CreatedAt:       time.Now(),
		}
		id, err := invoiceRepo.Create(inv)
		if err != nil {
			return err
		}
		inv.ID = id
		for _, item := range items {
			item.InvoiceID = id
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		inv.Items = items
		inv.PoNumber = po.PoNumber
		inv.InternalCode = po.InternalCode

		// Completion is derived from the ledger including the rows just
		// inserted, inside the same transaction.
		for i := range fulfillments {
			fulfillments[i].Invoiced += requested[fulfillments[i].PoItemID]
		}
		if err := poRepo.SetCompleted(po.ID, ledger.IsCompleted(fulfillments)); err != nil {
			return err
		}

		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(created, true), nil
}

// Update edits invoice header fields. Line quantities are immutable and the
// GST rates stay frozen at their creation-time values; totals are recomputed
// from the stored subtotal and those frozen rates.
func (uc *InvoiceUseCase) Update(ctx context.Context, invoiceID int64, in dto.InvoiceUpdateRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByIDWithItems(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if in.InvoiceNumber != "" && in.InvoiceNumber != inv.InvoiceNumber {
		exists, err := uc.invoiceRepo.NumberExists(in.InvoiceNumber, invoiceID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		inv.InvoiceNumber = in.InvoiceNumber
	}

	totals := gst.ComputeTotals(inv.TotalAmount, inv.CgstPercent, inv.SgstPercent, inv.IgstPercent)
	inv.TaxAmount = totals.TaxAmount
	inv.RoundOff = totals.RoundOff
	inv.GrandTotal = totals.GrandTotal

	inv.InvoiceDate = in.InvoiceDate
	inv.ShippingAddress = in.ShippingAddress
	inv.FreightAmount = in.FreightAmount
	inv.ContactName = in.ContactName
	inv.ContactNo = in.ContactNo
	inv.VehicleNo = in.VehicleNo
	inv.SimDcNo = in.SimDcNo
	inv.YourDcNo = in.YourDcNo
	inv.Remarks = in.Remarks
	inv.IsPaid = in.IsPaid

	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// Delete soft-deletes an invoice and recomputes the parent order's completion
// flag in the same transaction. The deleted quantities flow back into the
// pending quantities immediately.
func (uc *InvoiceUseCase) Delete(ctx context.Context, invoiceID int64) error {
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		inv, err := invoiceRepo.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil || inv.IsDeleted {
			return domain.ErrNotFound
		}
		// Lock the order so the recompute cannot race a concurrent invoice
		// against it.
		if _, err := poRepo.GetByIDForUpdate(inv.PoID); err != nil {
			return err
		}
		if err := invoiceRepo.SoftDelete(invoiceID); err != nil {
			return err
		}
		fulfillments, err := poRepo.ItemFulfillments(inv.PoID)
		if err != nil {
			return err
		}
		return poRepo.SetCompleted(inv.PoID, ledger.IsCompleted(fulfillments))
	})
}

// List returns all non-deleted invoices, newest first.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, false))
	}
	return out, nil
}

// Search returns one page of the invoice register with totals aggregated
// over the whole filtered set.
func (uc *InvoiceUseCase) Search(ctx context.Context, filter repository.InvoiceFilter) (*dto.InvoicePageResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	page, err := uc.invoiceRepo.GetPaged(filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoicePageResponse{
		Invoices:      make([]dto.InvoiceResponse, 0, len(page.Invoices)),
		TotalCount:    page.TotalCount,
		TotalAmount:   page.TotalAmount,
		TotalQuantity: page.TotalQuantity,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}
	for _, inv := range page.Invoices {
		resp.Invoices = append(resp.Invoices, *toInvoiceResponse(inv, false))
	}
	return resp, nil
}

// Get returns one invoice with its items.
func (uc *InvoiceUseCase) Get(ctx context.Context, invoiceID int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByIDWithItems(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv, true), nil
}

// UnpaidCount counts non-deleted unpaid invoices, shown as a badge on the
// invoice register.
func (uc *InvoiceUseCase) UnpaidCount(ctx context.Context) (int, error) {
	return uc.invoiceRepo.UnpaidCount()
}

// NextNumber previews the next SIMINV number without reserving it.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context) (string, error) {
	return uc.invoiceRepo.NextInvoiceNumber()
}

// RenderPDF produces the printable tax invoice.
func (uc *InvoiceUseCase) RenderPDF(ctx context.Context, invoiceID int64) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByIDWithItems(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.IsDeleted {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.RenderInvoice(inv, customer, uc.company)
}

func toInvoiceResponse(inv *entity.Invoice, withItems bool) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		PoID:            inv.PoID,
		PoNumber:        inv.PoNumber,
		InternalCode:    inv.InternalCode,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		InvoiceDate:     inv.InvoiceDate,
		TotalAmount:     inv.TotalAmount,
		CgstPercent:     inv.CgstPercent,
		SgstPercent:     inv.SgstPercent,
		IgstPercent:     inv.IgstPercent,
		TaxAmount:       inv.TaxAmount,
		RoundOff:        inv.RoundOff,
		GrandTotal:      inv.GrandTotal,
		ShippingAddress: inv.ShippingAddress,
		FreightAmount:   inv.FreightAmount,
		ContactName:     inv.ContactName,
		ContactNo:       inv.ContactNo,
		VehicleNo:       inv.VehicleNo,
		SimDcNo:         inv.SimDcNo,
		YourDcNo:        inv.YourDcNo,
		Remarks:         inv.Remarks,
		IsPaid:          inv.IsPaid,
		TotalQuantity:   inv.TotalQuantity,
	}
	if withItems {
		resp.Items = make([]dto.InvoiceItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			resp.Items = append(resp.Items, dto.InvoiceItemResponse{
				ID:              it.ID,
				PoItemID:        it.PoItemID,
				ItemDescription: it.ItemDescription,
				HsnCode:         it.HsnCode,
				OrderedQuantity: it.OrderedQuantity,
				Quantity:        it.Quantity,
				UnitPrice:       it.UnitPrice,
				LineAmount:      it.LineAmount,
			})
		}
	}
	return resp
}
