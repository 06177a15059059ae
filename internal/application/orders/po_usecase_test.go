package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/application/orders"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

type orderStore struct {
	customers map[int64]*entity.Customer
	pos       map[int64]*entity.PurchaseOrder
	items     map[int64]*entity.PurchaseOrderItem
	invoiced  map[int64]int // po_item_id -> invoiced quantity
	nextID    int64
}

func newOrderStore() *orderStore {
	return &orderStore{
		customers: map[int64]*entity.Customer{
			1: {ID: 1, CustomerCode: "CUST01", CustomerName: "Acme Engineering", IsActive: true},
		},
		pos:      map[int64]*entity.PurchaseOrder{},
		items:    map[int64]*entity.PurchaseOrderItem{},
		invoiced: map[int64]int{},
		nextID:   100,
	}
}

func (s *orderStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakePoRepo struct{ s *orderStore }

func (r *fakePoRepo) GetAll() ([]*entity.PurchaseOrder, error) {
	out := []*entity.PurchaseOrder{}
	for _, po := range r.s.pos {
		if !po.IsDeleted {
			out = append(out, po)
		}
	}
	return out, nil
}

func (r *fakePoRepo) GetByID(poID int64) (*entity.PurchaseOrder, error) {
	return r.s.pos[poID], nil
}

func (r *fakePoRepo) GetByIDForUpdate(poID int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(poID)
}

func (r *fakePoRepo) GetByIDWithItems(poID int64) (*entity.PurchaseOrder, error) {
	po := r.s.pos[poID]
	if po == nil {
		return nil, nil
	}
	po.Items = r.liveItems(poID)
	return po, nil
}

func (r *fakePoRepo) GetByIDWithInvoices(poID int64) (*entity.PurchaseOrder, error) {
	return r.GetByIDWithItems(poID)
}

func (r *fakePoRepo) Create(po *entity.PurchaseOrder) (int64, error) {
	po.ID = r.s.id()
	r.s.pos[po.ID] = po
	return po.ID, nil
}

func (r *fakePoRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	item.ID = r.s.id()
	r.s.items[item.ID] = item
	return nil
}

func (r *fakePoRepo) Update(po *entity.PurchaseOrder) error {
	if existing := r.s.pos[po.ID]; existing == nil || existing.IsDeleted {
		return domain.ErrNotFound
	}
	r.s.pos[po.ID] = po
	return nil
}

func (r *fakePoRepo) SoftDeleteItems(poID int64) error {
	for _, it := range r.s.items {
		if it.PoID == poID {
			it.IsDeleted = true
		}
	}
	return nil
}

func (r *fakePoRepo) SoftDelete(poID int64) error {
	po := r.s.pos[poID]
	if po == nil || po.IsDeleted {
		return domain.ErrNotFound
	}
	po.IsDeleted = true
	return r.SoftDeleteItems(poID)
}

func (r *fakePoRepo) NumberExists(poNumber string, excludePoID int64) (bool, error) {
	for _, po := range r.s.pos {
		if po.PoNumber == poNumber && !po.IsDeleted && po.ID != excludePoID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePoRepo) NextInternalCode() (string, error) {
	return fmt.Sprintf("SIMPO%04d", len(r.s.pos)+1), nil
}

func (r *fakePoRepo) DropdownList() ([]*repository.PurchaseOrderRef, error) {
	out := []*repository.PurchaseOrderRef{}
	for _, po := range r.s.pos {
		if po.IsDeleted || po.IsCompleted {
			continue
		}
		out = append(out, &repository.PurchaseOrderRef{
			PoID:         po.ID,
			InternalCode: po.InternalCode,
			PoNumber:     po.PoNumber,
			CustomerName: "Acme Engineering",
		})
	}
	return out, nil
}

func (r *fakePoRepo) ItemFulfillments(poID int64) ([]ledger.ItemFulfillment, error) {
	out := []ledger.ItemFulfillment{}
	for _, it := range r.liveItems(poID) {
		out = append(out, ledger.ItemFulfillment{
			PoItemID:        it.ID,
			LineNumber:      it.LineNumber,
			ItemDescription: it.ItemDescription,
			HsnCode:         it.HsnCode,
			UnitPrice:       it.UnitPrice,
			Ordered:         it.Quantity,
			Invoiced:        r.s.invoiced[it.ID],
		})
	}
	return out, nil
}

func (r *fakePoRepo) SetCompleted(poID int64, completed bool) error {
	r.s.pos[poID].IsCompleted = completed
	return nil
}

func (r *fakePoRepo) liveItems(poID int64) []*entity.PurchaseOrderItem {
	out := []*entity.PurchaseOrderItem{}
	for _, it := range r.s.items {
		if it.PoID == poID && !it.IsDeleted {
			out = append(out, it)
		}
	}
	return out
}

type fakeCustomerRepo struct{ s *orderStore }

func (r *fakeCustomerRepo) GetAll() ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) GetByID(customerID int64) (*entity.Customer, error) {
	return r.s.customers[customerID], nil
}
func (r *fakeCustomerRepo) Create(customer *entity.Customer) (int64, error) { return 0, nil }
func (r *fakeCustomerRepo) Update(customer *entity.Customer) error          { return nil }
func (r *fakeCustomerRepo) SoftDelete(customerID int64) error               { return nil }
func (r *fakeCustomerRepo) CodeExists(customerCode string, excludeCustomerID int64) (bool, error) {
	return false, nil
}
func (r *fakeCustomerRepo) GetAllStates() ([]*entity.IndianState, error) { return nil, nil }

type fakeOrdersTxRunner struct{ repo repository.PurchaseOrderRepository }

func (t *fakeOrdersTxRunner) RunOrders(ctx context.Context, fn func(repository.PurchaseOrderRepository) error) error {
	return fn(t.repo)
}

func newOrderUseCase(s *orderStore) *orders.PurchaseOrderUseCase {
	poRepo := &fakePoRepo{s: s}
	return orders.NewPurchaseOrderUseCase(
		&fakeOrdersTxRunner{repo: poRepo},
		poRepo,
		&fakeCustomerRepo{s: s},
		nil,
		entity.CompanyProfile{Name: "SIM Industries"},
	)
}

func orderRequest(poNumber string, items ...dto.PurchaseOrderItemRequest) dto.PurchaseOrderRequest {
	return dto.PurchaseOrderRequest{
		PoNumber:    poNumber,
		CustomerID:  1,
		CgstPercent: decimal.RequireFromString("9"),
		SgstPercent: decimal.RequireFromString("9"),
		PoDate:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items:       items,
	}
}

func line(desc string, qty int, price string) dto.PurchaseOrderItemRequest {
	return dto.PurchaseOrderItemRequest{
		ItemDescription: desc,
		HsnCode:         "7308",
		Quantity:        qty,
		UnitPrice:       decimal.RequireFromString(price),
	}
}

func TestOrderCreate_AssignsCodeAndComputesAmount(t *testing.T) {
	uc := newOrderUseCase(newOrderStore())

	out, err := uc.Create(context.Background(), 1,
		orderRequest("PO/ACME/77", line("MS bracket", 10, "125.50"), line("Base plate", 4, "80")))
	require.NoError(t, err)

	assert.Equal(t, "SIMPO0001", out.InternalCode)
	assert.True(t, out.PoAmount.Equal(decimal.RequireFromString("1575")),
		"order amount must be the sum of server-computed line totals, got %s", out.PoAmount)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 1, out.Items[0].LineNumber)
	assert.Equal(t, 2, out.Items[1].LineNumber)
	assert.False(t, out.IsCompleted)
}

func TestOrderCreate_ValidationCollectsAllFailures(t *testing.T) {
	uc := newOrderUseCase(newOrderStore())

	req := orderRequest("", line("", 0, "10"))
	req.IgstPercent = decimal.RequireFromString("120")
	_, err := uc.Create(context.Background(), 1, req)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["po_number"])
	assert.True(t, fields["items"])
	assert.True(t, fields["igst_percent"])
}

func TestOrderCreate_RejectsTooManyItems(t *testing.T) {
	uc := newOrderUseCase(newOrderStore())

	items := make([]dto.PurchaseOrderItemRequest, entity.MaxPurchaseOrderItems+1)
	for i := range items {
		items[i] = line(fmt.Sprintf("item %d", i+1), 1, "10")
	}
	_, err := uc.Create(context.Background(), 1, orderRequest("PO/ACME/78", items...))

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Error(), "at most")
}

func TestOrderCreate_DuplicateNumberRejected(t *testing.T) {
	s := newOrderStore()
	uc := newOrderUseCase(s)

	_, err := uc.Create(context.Background(), 1, orderRequest("PO/ACME/79", line("Bracket", 5, "10")))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), 1, orderRequest("PO/ACME/79", line("Bracket", 5, "10")))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrderCreate_UnknownCustomer(t *testing.T) {
	uc := newOrderUseCase(newOrderStore())

	req := orderRequest("PO/ACME/80", line("Bracket", 5, "10"))
	req.CustomerID = 999
	_, err := uc.Create(context.Background(), 1, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUpdate_ReplacesItemsAndRecomputesCompletion(t *testing.T) {
	s := newOrderStore()
	uc := newOrderUseCase(s)

	created, err := uc.Create(context.Background(), 1, orderRequest("PO/ACME/81", line("Bracket", 5, "10")))
	require.NoError(t, err)

	// Fully invoice the only line, then mark the order complete the way the
	// billing flow would.
	s.invoiced[created.Items[0].ID] = 5
	s.pos[created.ID].IsCompleted = true

	out, err := uc.Update(context.Background(), created.ID,
		orderRequest("PO/ACME/81-R1", line("Bracket rev B", 8, "12")))
	require.NoError(t, err)

	assert.Equal(t, "PO/ACME/81-R1", out.PoNumber)
	assert.True(t, out.PoAmount.Equal(decimal.RequireFromString("96")))
	require.Len(t, out.Items, 1)
	assert.NotEqual(t, created.Items[0].ID, out.Items[0].ID,
		"edit must insert fresh lines, not reuse the old ones")
	assert.False(t, out.IsCompleted,
		"replaced lines start uninvoiced, so the order must reopen")

	// The old line is retired but still present for invoices to reference.
	old := s.items[created.Items[0].ID]
	require.NotNil(t, old)
	assert.True(t, old.IsDeleted)
}

func TestOrderUpdate_MissingOrder(t *testing.T) {
	uc := newOrderUseCase(newOrderStore())

	_, err := uc.Update(context.Background(), 12345,
		orderRequest("PO/ACME/82", line("Bracket", 5, "10")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderDelete_ThenGone(t *testing.T) {
	s := newOrderStore()
	uc := newOrderUseCase(s)

	created, err := uc.Create(context.Background(), 1, orderRequest("PO/ACME/83", line("Bracket", 5, "10")))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrNotFound)

	_, err = uc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingItems_ReflectsInvoicedQuantities(t *testing.T) {
	s := newOrderStore()
	uc := newOrderUseCase(s)

	created, err := uc.Create(context.Background(), 1,
		orderRequest("PO/ACME/84", line("Bracket", 10, "10")))
	require.NoError(t, err)
	s.invoiced[created.Items[0].ID] = 6

	pending, err := uc.PendingItems(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 10, pending[0].OrderedQuantity)
	assert.Equal(t, 6, pending[0].InvoicedQuantity)
	assert.Equal(t, 4, pending[0].PendingQuantity)
}

func TestDropdown_SkipsCompletedOrders(t *testing.T) {
	s := newOrderStore()
	uc := newOrderUseCase(s)

	open, err := uc.Create(context.Background(), 1, orderRequest("PO/ACME/85", line("Bracket", 5, "10")))
	require.NoError(t, err)
	done, err := uc.Create(context.Background(), 1, orderRequest("PO/ACME/86", line("Plate", 2, "20")))
	require.NoError(t, err)
	s.pos[done.ID].IsCompleted = true

	refs, err := uc.Dropdown(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, open.ID, refs[0].ID)
	assert.Equal(t, fmt.Sprintf("%s / %s (%s)", open.InternalCode, "PO/ACME/85", "Acme Engineering"), refs[0].Label)
}
