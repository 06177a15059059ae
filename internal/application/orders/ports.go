package orders

import (
	"context"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// OrdersTxRunner runs a function inside one database transaction over the
// purchase-order repository, so create-with-items and replace-items apply
// fully or not at all.
type OrdersTxRunner interface {
	RunOrders(ctx context.Context, fn func(poRepo repository.PurchaseOrderRepository) error) error
}

// PurchaseOrderPDFGenerator renders a purchase-order confirmation as PDF bytes.
type PurchaseOrderPDFGenerator interface {
	RenderPurchaseOrder(po *entity.PurchaseOrder, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error)
}
