package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// ChallanUseCase manages delivery challans. Challans document goods movement
// only; they never touch the order ledger or invoicing totals.
type ChallanUseCase struct {
	txRunner     DocumentsTxRunner
	repo         repository.DeliveryChallanRepository
	customerRepo repository.CustomerRepository
	pdfGen       ChallanPDFGenerator
	company      entity.CompanyProfile
}

// NewChallanUseCase builds the use case.
func NewChallanUseCase(
	txRunner DocumentsTxRunner,
	repo repository.DeliveryChallanRepository,
	customerRepo repository.CustomerRepository,
	pdfGen ChallanPDFGenerator,
	company entity.CompanyProfile,
) *ChallanUseCase {
	return &ChallanUseCase{txRunner: txRunner, repo: repo, customerRepo: customerRepo, pdfGen: pdfGen, company: company}
}

// Create issues a challan with the next SIM/DC number. Header and items are
// inserted in one transaction.
func (uc *ChallanUseCase) Create(ctx context.Context, userID int64, in dto.ChallanRequest) (*dto.ChallanResponse, error) {
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

	var dc *entity.DeliveryChallan
	err = uc.txRunner.RunDocuments(ctx, func(
		challanRepo repository.DeliveryChallanRepository,
		_ repository.QuotationRepository,
	) error {
		number, err := challanRepo.NextDcNumber()
		if err != nil {
			return err
		}
		dc = &entity.DeliveryChallan{
			DcNumber:        number,
			DcDate:          in.DcDate,
			CustomerID:      in.CustomerID,
			TargetCompany:   in.TargetCompany,
			VehicleNo:       in.VehicleNo,
			CreatedAt:       time.Now(),
			CreatedByUserID: userID,
		}
		id, err := challanRepo.Create(dc)
		if err != nil {
			return err
		}
		dc.ID = id
		for i, it := range in.Items {
			item := &entity.DeliveryChallanItem{
				DcID:        id,
				SlNo:        i + 1,
				Description: strings.TrimSpace(it.Description),
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				Remarks:     it.Remarks,
			}
			if err := challanRepo.CreateItem(item); err != nil {
				return err
			}
			dc.Items = append(dc.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	dc.CustomerName = customer.CustomerName
	return toChallanResponse(dc), nil
}

// List returns non-deleted challans, newest first, optionally restricted to
// a date range.
func (uc *ChallanUseCase) List(ctx context.Context, from, to *time.Time) ([]*dto.ChallanResponse, error) {
	var challans []*entity.DeliveryChallan
	var err error
	if from != nil && to != nil {
		challans, err = uc.repo.GetByDateRange(*from, *to)
	} else {
		challans, err = uc.repo.GetAll()
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ChallanResponse, 0, len(challans))
	for _, dc := range challans {
		out = append(out, toChallanResponse(dc))
	}
	return out, nil
}

// Get returns one challan with its items.
func (uc *ChallanUseCase) Get(ctx context.Context, dcID int64) (*dto.ChallanResponse, error) {
	dc, err := uc.repo.GetByID(dcID)
	if err != nil {
		return nil, err
	}
	if dc == nil || dc.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return toChallanResponse(dc), nil
}

// NextNumber previews the next SIM/DC number without reserving it.
func (uc *ChallanUseCase) NextNumber(ctx context.Context) (string, error) {
	return uc.repo.NextDcNumber()
}

// Delete soft-deletes a challan.
func (uc *ChallanUseCase) Delete(ctx context.Context, dcID int64) error {
	dc, err := uc.repo.GetByID(dcID)
	if err != nil {
		return err
	}
	if dc == nil || dc.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(dcID)
}

// RenderPDF produces the printable challan.
func (uc *ChallanUseCase) RenderPDF(ctx context.Context, dcID int64) ([]byte, error) {
	dc, err := uc.repo.GetByID(dcID)
	if err != nil {
		return nil, err
	}
	if dc == nil || dc.IsDeleted {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(dc.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.RenderChallan(dc, customer, uc.company)
}

func toChallanResponse(dc *entity.DeliveryChallan) *dto.ChallanResponse {
	resp := &dto.ChallanResponse{
		ID:            dc.ID,
		DcNumber:      dc.DcNumber,
		DcDate:        dc.DcDate,
		CustomerID:    dc.CustomerID,
		CustomerName:  dc.CustomerName,
		TargetCompany: dc.TargetCompany,
		VehicleNo:     dc.VehicleNo,
	}
	for _, it := range dc.Items {
		if it.IsDeleted {
			continue
		}
		resp.Items = append(resp.Items, dto.ChallanItemResponse{
			ID:          it.ID,
			SlNo:        it.SlNo,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Remarks:     it.Remarks,
		})
	}
	return resp
}
