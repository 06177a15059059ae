package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// QuotationUseCase manages quotations (SIM/QN numbering, per financial year).
type QuotationUseCase struct {
	txRunner     DocumentsTxRunner
	repo         repository.QuotationRepository
	customerRepo repository.CustomerRepository
	pdfGen       QuotationPDFGenerator
	company      entity.CompanyProfile
}

// NewQuotationUseCase builds the use case.
func NewQuotationUseCase(
	txRunner DocumentsTxRunner,
	repo repository.QuotationRepository,
	customerRepo repository.CustomerRepository,
	pdfGen QuotationPDFGenerator,
	company entity.CompanyProfile,
) *QuotationUseCase {
	return &QuotationUseCase{txRunner: txRunner, repo: repo, customerRepo: customerRepo, pdfGen: pdfGen, company: company}
}

// Create issues a quotation with the next SIM/QN number. Header and items
// are inserted in one transaction.
func (uc *QuotationUseCase) Create(ctx context.Context, userID int64, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	ve := &domain.ValidationError{}
	if in.CustomerID <= 0 {
		ve.Add("customer_id", "customer is required")
	}
	if len(in.Items) == 0 {
		ve.Add("items", "at least one item is required")
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" {
			ve.Add("items", fmt.Sprintf("line %d: description is required", i+1))
		}
		if it.Quantity <= 0 {
			ve.Add("items", fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		if it.UnitPrice.IsNegative() {
			ve.Add("items", fmt.Sprintf("line %d: unit price cannot be negative", i+1))
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	var q *entity.Quotation
	err = uc.txRunner.RunDocuments(ctx, func(
		_ repository.DeliveryChallanRepository,
		quotationRepo repository.QuotationRepository,
	) error {
		number, err := quotationRepo.NextQuotationNo()
		if err != nil {
			return err
		}
		q = &entity.Quotation{
			QuotationNo:     number,
			Date:            in.Date,
			ValidUntil:      in.ValidUntil,
			CustomerID:      in.CustomerID,
			CreatedAt:       time.Now(),
			CreatedByUserID: userID,
		}
		id, err := quotationRepo.Create(q)
		if err != nil {
			return err
		}
		q.ID = id
		for i, it := range in.Items {
			item := &entity.QuotationItem{
				QuotationID: id,
				SlNo:        i + 1,
				Description: strings.TrimSpace(it.Description),
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalAmount: decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice),
			}
			if err := quotationRepo.CreateItem(item); err != nil {
				return err
			}
			q.Items = append(q.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	q.CustomerName = customer.CustomerName
	return toQuotationResponse(q), nil
}

// List returns non-deleted quotations, newest first, optionally restricted
// to a date range.
func (uc *QuotationUseCase) List(ctx context.Context, from, to *time.Time) ([]*dto.QuotationResponse, error) {
	var quotations []*entity.Quotation
	var err error
	if from != nil && to != nil {
		quotations, err = uc.repo.GetByDateRange(*from, *to)
	} else {
		quotations, err = uc.repo.GetAll()
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		out = append(out, toQuotationResponse(q))
	}
	return out, nil
}

// Get returns one quotation with its items.
func (uc *QuotationUseCase) Get(ctx context.Context, quotationID int64) (*dto.QuotationResponse, error) {
	q, err := uc.repo.GetByID(quotationID)
	if err != nil {
		return nil, err
	}
	if q == nil || q.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return toQuotationResponse(q), nil
}

// NextNumber previews the next SIM/QN number without reserving it.
func (uc *QuotationUseCase) NextNumber(ctx context.Context) (string, error) {
	return uc.repo.NextQuotationNo()
}

// Delete soft-deletes a quotation.
func (uc *QuotationUseCase) Delete(ctx context.Context, quotationID int64) error {
	q, err := uc.repo.GetByID(quotationID)
	if err != nil {
		return err
	}
	if q == nil || q.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(quotationID)
}

// RenderPDF produces the printable quotation.
func (uc *QuotationUseCase) RenderPDF(ctx context.Context, quotationID int64) ([]byte, error) {
	q, err := uc.repo.GetByID(quotationID)
	if err != nil {
		return nil, err
	}
	if q == nil || q.IsDeleted {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(q.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.RenderQuotation(q, customer, uc.company)
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:           q.ID,
		QuotationNo:  q.QuotationNo,
		Date:         q.Date,
		ValidUntil:   q.ValidUntil,
		CustomerID:   q.CustomerID,
		CustomerName: q.CustomerName,
		TotalAmount:  q.TotalAmount(),
	}
	for _, it := range q.Items {
		if it.IsDeleted {
			continue
		}
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:          it.ID,
			SlNo:        it.SlNo,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalAmount: it.TotalAmount,
		})
	}
	return resp
}
