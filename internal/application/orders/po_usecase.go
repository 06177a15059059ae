package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// PurchaseOrderUseCase manages purchase orders and their items. All writes
// that touch items run through the transaction runner.
type PurchaseOrderUseCase struct {
	txRunner     OrdersTxRunner
	poRepo       repository.PurchaseOrderRepository
	customerRepo repository.CustomerRepository
	pdfGen       PurchaseOrderPDFGenerator
	company      entity.CompanyProfile
}

// NewPurchaseOrderUseCase builds the use case.
func NewPurchaseOrderUseCase(
	txRunner OrdersTxRunner,
	poRepo repository.PurchaseOrderRepository,
	customerRepo repository.CustomerRepository,
	pdfGen PurchaseOrderPDFGenerator,
	company entity.CompanyProfile,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		customerRepo: customerRepo,
		pdfGen:       pdfGen,
		company:      company,
	}
}

func validateOrder(in *dto.PurchaseOrderRequest) error {
	in.PoNumber = strings.TrimSpace(in.PoNumber)
	ve := &domain.ValidationError{}
	if in.PoNumber == "" {
		ve.Add("po_number", "PO number is required")
	}
	if in.CustomerID <= 0 {
		ve.Add("customer_id", "customer is required")
	}
	if len(in.Items) == 0 {
		ve.Add("items", "at least one item is required")
	}
	if len(in.Items) > entity.MaxPurchaseOrderItems {
		ve.Add("items", fmt.Sprintf("at most %d items are allowed", entity.MaxPurchaseOrderItems))
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ItemDescription) == "" {
			ve.Add("items", fmt.Sprintf("line %d: description is required", i+1))
		}
		if it.Quantity <= 0 {
			ve.Add("items", fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		if it.UnitPrice.IsNegative() {
			ve.Add("items", fmt.Sprintf("line %d: unit price cannot be negative", i+1))
		}
	}
	for field, pct := range map[string]decimal.Decimal{
		"cgst_percent": in.CgstPercent,
		"sgst_percent": in.SgstPercent,
		"igst_percent": in.IgstPercent,
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

// buildItems assigns line numbers and computes line totals server side;
// client-supplied amounts are never trusted.
func buildItems(in *dto.PurchaseOrderRequest) ([]*entity.PurchaseOrderItem, decimal.Decimal) {
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	amount := decimal.Zero
	for i, it := range in.Items {
		lineTotal := decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice)
		amount = amount.Add(lineTotal)
		items = append(items, &entity.PurchaseOrderItem{
			LineNumber:      i + 1,
			ItemDescription: strings.TrimSpace(it.ItemDescription),
			HsnCode:         strings.TrimSpace(it.HsnCode),
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			LineTotal:       lineTotal,
		})
	}
	return items, amount
}

// Create registers a purchase order with its items in one transaction. The
// internal code (SIMPOxxxx) is generated inside that transaction.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID int64, in dto.PurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := validateOrder(&in); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	items, amount := buildItems(&in)
	po := &entity.PurchaseOrder{
		PoNumber:        in.PoNumber,
		CustomerID:      in.CustomerID,
		PoAmount:        amount,
		CgstPercent:     in.CgstPercent,
		SgstPercent:     in.SgstPercent,
		IgstPercent:     in.IgstPercent,
		PoDate:          in.PoDate,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		CreatedAt:       time.Now(),
		CreatedByUserID: userID,
	}

	err = uc.txRunner.RunOrders(ctx, func(poRepo repository.PurchaseOrderRepository) error {
		exists, err := poRepo.NumberExists(in.PoNumber, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}
		po.InternalCode, err = poRepo.NextInternalCode()
		if err != nil {
			return err
		}
		id, err := poRepo.Create(po)
		if err != nil {
			return err
		}
		po.ID = id
		for _, item := range items {
			item.PoID = id
			if err := poRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	po.Items = items
	po.CustomerName = customer.CustomerName
	return toOrderResponse(po, true), nil
}

// Update rewrites the order header and replaces the item list: the old lines
// are soft-deleted and the new set inserted, all in one transaction. Invoice
// items keep pointing at the soft-deleted lines; the completion flag is
// recomputed against the new lines, which start with nothing invoiced.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, poID int64, in dto.PurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := validateOrder(&in); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	items, amount := buildItems(&in)
	var po *entity.PurchaseOrder
	err = uc.txRunner.RunOrders(ctx, func(poRepo repository.PurchaseOrderRepository) error {
		existing, err := poRepo.GetByIDForUpdate(poID)
		if err != nil {
			return err
		}
		if existing == nil || existing.IsDeleted {
			return domain.ErrNotFound
		}
		exists, err := poRepo.NumberExists(in.PoNumber, poID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}

		po = existing
		po.PoNumber = in.PoNumber
		po.CustomerID = in.CustomerID
		po.PoAmount = amount
		po.CgstPercent = in.CgstPercent
		po.SgstPercent = in.SgstPercent
		po.IgstPercent = in.IgstPercent
		po.PoDate = in.PoDate
		po.StartDate = in.StartDate
		po.EndDate = in.EndDate
		if err := poRepo.Update(po); err != nil {
			return err
		}

		if err := poRepo.SoftDeleteItems(poID); err != nil {
			return err
		}
		for _, item := range items {
			item.PoID = poID
			if err := poRepo.CreateItem(item); err != nil {
				return err
			}
		}

		fulfillments, err := poRepo.ItemFulfillments(poID)
		if err != nil {
			return err
		}
		return poRepo.SetCompleted(poID, ledger.IsCompleted(fulfillments))
	})
	if err != nil {
		return nil, err
	}
	po.Items = items
	po.CustomerName = customer.CustomerName
	return toOrderResponse(po, true), nil
}

// Delete soft-deletes the order and its items. Invoices already raised
// against it survive and stay visible in the invoice register.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, poID int64) error {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return err
	}
	if po == nil || po.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.poRepo.SoftDelete(poID)
}

// List returns all non-deleted orders, newest first.
func (uc *PurchaseOrderUseCase) List(ctx context.Context) ([]*dto.PurchaseOrderResponse, error) {
	pos, err := uc.poRepo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, toOrderResponse(po, false))
	}
	return out, nil
}

// Get returns one order with its items and the invoices raised against it.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, poID int64) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByIDWithInvoices(poID)
	if err != nil {
		return nil, err
	}
	if po == nil || po.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(po, true), nil
}

// PendingItems returns the fulfillment state of the order's lines, used to
// prefill an invoice form.
func (uc *PurchaseOrderUseCase) PendingItems(ctx context.Context, poID int64) ([]*dto.PendingItemResponse, error) {
	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil || po.IsDeleted {
		return nil, domain.ErrNotFound
	}
	fulfillments, err := uc.poRepo.ItemFulfillments(poID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PendingItemResponse, 0, len(fulfillments))
	for _, f := range fulfillments {
		out = append(out, &dto.PendingItemResponse{
			PoItemID:         f.PoItemID,
			LineNumber:       f.LineNumber,
			ItemDescription:  f.ItemDescription,
			HsnCode:          f.HsnCode,
			OrderedQuantity:  f.Ordered,
			UnitPrice:        f.UnitPrice,
			InvoicedQuantity: f.Invoiced,
			PendingQuantity:  f.Pending(),
		})
	}
	return out, nil
}

// Dropdown returns open orders as labelled references.
func (uc *PurchaseOrderUseCase) Dropdown(ctx context.Context) ([]*dto.PurchaseOrderRefResponse, error) {
	refs, err := uc.poRepo.DropdownList()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderRefResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, &dto.PurchaseOrderRefResponse{
			ID:           r.PoID,
			InternalCode: r.InternalCode,
			PoNumber:     r.PoNumber,
			CustomerName: r.CustomerName,
			Label:        fmt.Sprintf("%s / %s (%s)", r.InternalCode, r.PoNumber, r.CustomerName),
		})
	}
	return out, nil
}

// NextCode previews the next internal code without reserving it.
func (uc *PurchaseOrderUseCase) NextCode(ctx context.Context) (string, error) {
	return uc.poRepo.NextInternalCode()
}

// RenderPDF produces the printable order confirmation.
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, poID int64) ([]byte, error) {
	po, err := uc.poRepo.GetByIDWithItems(poID)
	if err != nil {
		return nil, err
	}
	if po == nil || po.IsDeleted {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(po.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.RenderPurchaseOrder(po, customer, uc.company)
}

func toOrderResponse(po *entity.PurchaseOrder, withDetail bool) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:           po.ID,
		PoNumber:     po.PoNumber,
		InternalCode: po.InternalCode,
		CustomerID:   po.CustomerID,
		CustomerName: po.CustomerName,
		PoAmount:     po.PoAmount,
		CgstPercent:  po.CgstPercent,
		SgstPercent:  po.SgstPercent,
		IgstPercent:  po.IgstPercent,
		PoDate:       po.PoDate,
		StartDate:    po.StartDate,
		EndDate:      po.EndDate,
		IsCompleted:  po.IsCompleted,
	}
	if !withDetail {
		return resp
	}
	resp.Items = make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		if it.IsDeleted {
			continue
		}
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:              it.ID,
			LineNumber:      it.LineNumber,
			ItemDescription: it.ItemDescription,
			HsnCode:         it.HsnCode,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			LineTotal:       it.LineTotal,
		})
	}
	if len(po.Invoices) > 0 {
		resp.Invoices = make([]dto.InvoiceResponse, 0, len(po.Invoices))
		for _, inv := range po.Invoices {
			resp.Invoices = append(resp.Invoices, dto.InvoiceResponse{
				ID:            inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				PoID:          inv.PoID,
				InvoiceDate:   inv.InvoiceDate,
				TotalAmount:   inv.TotalAmount,
				TaxAmount:     inv.TaxAmount,
				RoundOff:      inv.RoundOff,
				GrandTotal:    inv.GrandTotal,
				IsPaid:        inv.IsPaid,
				TotalQuantity: inv.TotalQuantity,
			})
		}
	}
	return resp
}
