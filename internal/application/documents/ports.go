package documents

import (
	"context"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// DocumentsTxRunner runs a function inside one database transaction spanning
// the challan and quotation repositories, so a document header and its item
// rows commit or roll back as one unit.
type DocumentsTxRunner interface {
	RunDocuments(ctx context.Context, fn func(
		challanRepo repository.DeliveryChallanRepository,
		quotationRepo repository.QuotationRepository,
	) error) error
}

// ChallanPDFGenerator renders a delivery challan as PDF bytes.
type ChallanPDFGenerator interface {
	RenderChallan(dc *entity.DeliveryChallan, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error)
}

// QuotationPDFGenerator renders a quotation as PDF bytes.
type QuotationPDFGenerator interface {
	RenderQuotation(q *entity.Quotation, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error)
}
