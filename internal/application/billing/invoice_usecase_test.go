package billing_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simindustries/bizdocs-api/internal/application/billing"
	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

// memStore is a single-order in-memory database shared by the fake repos.
// It reproduces the semantics the SQL layer provides: invoiced quantities
// aggregate over non-deleted invoices only.
type memStore struct {
	po       *entity.PurchaseOrder
	poItems  []*entity.PurchaseOrderItem
	invoices map[int64]*entity.Invoice
	items    []*entity.InvoiceItem
	nextID   int64
	// rowLock stands in for the FOR UPDATE lock on the order row: taken by
	// GetByIDForUpdate, released when the fake transaction ends.
	rowLock sync.Mutex
}

func newMemStore(po *entity.PurchaseOrder, items ...*entity.PurchaseOrderItem) *memStore {
	return &memStore{po: po, poItems: items, invoices: map[int64]*entity.Invoice{}}
}

func (s *memStore) invoicedQty(poItemID int64) int {
	total := 0
	for _, it := range s.items {
		if it.PoItemID != poItemID {
			continue
		}
		if inv, ok := s.invoices[it.InvoiceID]; ok && !inv.IsDeleted {
			total += it.Quantity
		}
	}
	return total
}

type fakePoRepo struct {
	s         *memStore
	lockTaken bool
}

func (r *fakePoRepo) GetAll() ([]*entity.PurchaseOrder, error) { return []*entity.PurchaseOrder{r.s.po}, nil }
func (r *fakePoRepo) GetByID(poID int64) (*entity.PurchaseOrder, error) {
	if r.s.po != nil && r.s.po.ID == poID {
		return r.s.po, nil
	}
	return nil, nil
}
func (r *fakePoRepo) GetByIDForUpdate(poID int64) (*entity.PurchaseOrder, error) {
	r.s.rowLock.Lock()
	r.lockTaken = true
	return r.GetByID(poID)
}
func (r *fakePoRepo) GetByIDWithItems(poID int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(poID)
}
func (r *fakePoRepo) GetByIDWithInvoices(poID int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(poID)
}
func (r *fakePoRepo) Create(po *entity.PurchaseOrder) (int64, error)    { return po.ID, nil }
func (r *fakePoRepo) CreateItem(item *entity.PurchaseOrderItem) error   { return nil }
func (r *fakePoRepo) Update(po *entity.PurchaseOrder) error             { return nil }
func (r *fakePoRepo) SoftDeleteItems(poID int64) error                  { return nil }
func (r *fakePoRepo) SoftDelete(poID int64) error                       { return nil }
func (r *fakePoRepo) NumberExists(n string, x int64) (bool, error)      { return false, nil }
func (r *fakePoRepo) NextInternalCode() (string, error)                 { return "SIMPO0001", nil }
func (r *fakePoRepo) DropdownList() ([]*repository.PurchaseOrderRef, error) { return nil, nil }

func (r *fakePoRepo) ItemFulfillments(poID int64) ([]ledger.ItemFulfillment, error) {
	out := make([]ledger.ItemFulfillment, 0, len(r.s.poItems))
	for _, it := range r.s.poItems {
		if it.IsDeleted {
			continue
		}
		out = append(out, ledger.ItemFulfillment{
			PoItemID:        it.ID,
			LineNumber:      it.LineNumber,
			ItemDescription: it.ItemDescription,
			HsnCode:         it.HsnCode,
			UnitPrice:       it.UnitPrice,
			Ordered:         it.Quantity,
			Invoiced:        r.s.invoicedQty(it.ID),
		})
	}
	return out, nil
}

func (r *fakePoRepo) SetCompleted(poID int64, completed bool) error {
	r.s.po.IsCompleted = completed
	return nil
}

type fakeInvoiceRepo struct{ s *memStore }

func (r *fakeInvoiceRepo) GetAll() ([]*entity.Invoice, error) { return nil, nil }
func (r *fakeInvoiceRepo) GetPaged(f repository.InvoiceFilter) (*repository.InvoicePage, error) {
	return &repository.InvoicePage{}, nil
}
func (r *fakeInvoiceRepo) GetByID(id int64) (*entity.Invoice, error) { return r.s.invoices[id], nil }
func (r *fakeInvoiceRepo) GetByIDWithItems(id int64) (*entity.Invoice, error) {
	inv := r.s.invoices[id]
	if inv == nil {
		return nil, nil
	}
	inv.Items = nil
	for _, it := range r.s.items {
		if it.InvoiceID == id {
			inv.Items = append(inv.Items, it)
		}
	}
	return inv, nil
}
func (r *fakeInvoiceRepo) GetByPoID(poID int64) ([]*entity.Invoice, error) { return nil, nil }
func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) (int64, error) {
	r.s.nextID++
	inv.ID = r.s.nextID
	r.s.invoices[inv.ID] = inv
	return inv.ID, nil
}
func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	r.s.items = append(r.s.items, item)
	return nil
}
func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}
func (r *fakeInvoiceRepo) SoftDelete(id int64) error {
	inv := r.s.invoices[id]
	if inv == nil {
		return domain.ErrNotFound
	}
	inv.IsDeleted = true
	return nil
}
func (r *fakeInvoiceRepo) NumberExists(number string, excludeID int64) (bool, error) {
	for _, inv := range r.s.invoices {
		if inv.InvoiceNumber == number && inv.ID != excludeID && !inv.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeInvoiceRepo) NextInvoiceNumber() (string, error) {
	return fmt.Sprintf("SIMINV%04d", len(r.s.invoices)+1), nil
}
func (r *fakeInvoiceRepo) UnpaidCount() (int, error) { return 0, nil }

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) GetAll() ([]*entity.Customer, error)            { return nil, nil }
func (fakeCustomerRepo) GetByID(id int64) (*entity.Customer, error)     { return &entity.Customer{ID: id}, nil }
func (fakeCustomerRepo) Create(c *entity.Customer) (int64, error)       { return 0, nil }
func (fakeCustomerRepo) Update(c *entity.Customer) error                { return nil }
func (fakeCustomerRepo) SoftDelete(id int64) error                      { return nil }
func (fakeCustomerRepo) CodeExists(c string, x int64) (bool, error)     { return false, nil }
func (fakeCustomerRepo) GetAllStates() ([]*entity.IndianState, error)   { return nil, nil }

// fakeTxRunner has no real transaction; the fakes mutate shared state
// directly. It does honor the row lock: a lock taken inside the callback is
// held until the callback returns, the way a real transaction holds it until
// commit or rollback.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	poRepo := &fakePoRepo{s: t.s}
	err := fn(&fakeInvoiceRepo{t.s}, poRepo)
	if poRepo.lockTaken {
		t.s.rowLock.Unlock()
	}
	return err
}

func newUseCase(s *memStore) *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(
		&fakeTxRunner{s},
		&fakeInvoiceRepo{s},
		&fakePoRepo{s: s},
		fakeCustomerRepo{},
		nil,
		entity.CompanyProfile{},
	)
}

func singleItemOrder(quantity int, price decimal.Decimal, cgst, sgst, igst decimal.Decimal) *memStore {
	po := &entity.PurchaseOrder{
		ID:           1,
		PoNumber:     "CUST-PO-77",
		InternalCode: "SIMPO0001",
		CustomerID:   1,
		CgstPercent:  cgst,
		SgstPercent:  sgst,
		IgstPercent:  igst,
		PoDate:       time.Now(),
	}
	item := &entity.PurchaseOrderItem{
		ID:              11,
		PoID:            1,
		LineNumber:      1,
		ItemDescription: "MS bracket",
		HsnCode:         "7308",
		Quantity:        quantity,
		UnitPrice:       price,
	}
	return newMemStore(po, item)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestInvoiceCreate_TotalsAndFrozenRates(t *testing.T) {
	s := singleItemOrder(1, d("1234.30"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)

	resp, err := uc.Create(context.Background(), dto.InvoiceCreateRequest{
		PoID:        1,
		InvoiceDate: time.Now(),
		Items:       []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(d("1234.30")))
	assert.True(t, resp.TaxAmount.Equal(d("222.174")), "tax = subtotal * 18%%, got %s", resp.TaxAmount)
	assert.True(t, resp.GrandTotal.Equal(d("1456")), "grand total rounds half away from zero, got %s", resp.GrandTotal)
	assert.True(t, resp.RoundOff.Equal(d("-0.474")), "got %s", resp.RoundOff)
	assert.True(t, resp.CgstPercent.Equal(d("9")))
	assert.True(t, resp.SgstPercent.Equal(d("9")))
	assert.Equal(t, "SIMINV0001", resp.InvoiceNumber)
}

func TestInvoiceCreate_PartialThenOverThenExact(t *testing.T) {
	s := singleItemOrder(60, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 20}},
	})
	require.NoError(t, err)
	assert.False(t, s.po.IsCompleted)

	// 50 against 40 pending must fail without writing anything.
	_, err = uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 50}},
	})
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.NotEmpty(t, ve.Fields)
	assert.Len(t, s.invoices, 1)

	// The remaining 40 completes the order.
	_, err = uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 40}},
	})
	require.NoError(t, err)
	assert.True(t, s.po.IsCompleted)
}

// Two concurrent invoices for 60 units each against a 100-unit line must not
// both pass validation off the same stale snapshot. The order row lock makes
// the second transaction wait for the first and see its rows.
func TestInvoiceCreate_ConcurrentCreatesCannotOverInvoice(t *testing.T) {
	s := singleItemOrder(100, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)

	// Hold the order's row lock, as an in-flight invoice transaction would.
	s.rowLock.Lock()

	errCh := make(chan error, 1)
	go func() {
		_, err := uc.Create(context.Background(), dto.InvoiceCreateRequest{
			PoID:  1,
			Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 60}},
		})
		errCh <- err
	}()

	// The second request has to block on the lock instead of reading a
	// snapshot that predates the in-flight invoice.
	select {
	case <-errCh:
		t.Fatal("create finished while the order row was locked")
	case <-time.After(100 * time.Millisecond):
	}

	// Commit the in-flight invoice for 60 units and release the lock.
	s.nextID++
	first := &entity.Invoice{ID: s.nextID, PoID: 1, InvoiceNumber: "SIMINV0001"}
	s.invoices[first.ID] = first
	s.items = append(s.items, &entity.InvoiceItem{InvoiceID: first.ID, PoItemID: 11, Quantity: 60})
	s.rowLock.Unlock()

	err := <-errCh
	require.Error(t, err, "second 60-unit invoice must fail with only 40 pending")
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok, "expected a validation error, got %v", err)
	assert.Len(t, s.invoices, 1)
	assert.Equal(t, 60, s.invoicedQty(11))
}

func TestInvoiceCreate_UnknownItemRejected(t *testing.T) {
	s := singleItemOrder(5, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)

	_, err := uc.Create(context.Background(), dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 999, Quantity: 1}},
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestInvoiceCreate_NoPositiveQuantityRejected(t *testing.T) {
	s := singleItemOrder(5, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)

	_, err := uc.Create(context.Background(), dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 0}},
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestInvoiceCreate_DuplicateNumber(t *testing.T) {
	s := singleItemOrder(10, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:          1,
		InvoiceNumber: "SIMINV0042",
		Items:         []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:          1,
		InvoiceNumber: "SIMINV0042",
		Items:         []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInvoiceDelete_ReopensOrder(t *testing.T) {
	s := singleItemOrder(30, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)
	ctx := context.Background()

	resp, err := uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 30}},
	})
	require.NoError(t, err)
	require.True(t, s.po.IsCompleted)

	require.NoError(t, uc.Delete(ctx, resp.ID))
	assert.False(t, s.po.IsCompleted, "deleting the only invoice must reopen the order")

	// The full quantity is invoiceable again.
	_, err = uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 30}},
	})
	require.NoError(t, err)
	assert.True(t, s.po.IsCompleted)
}

func TestInvoiceDelete_AlreadyDeleted(t *testing.T) {
	s := singleItemOrder(5, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)
	ctx := context.Background()

	resp, err := uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, resp.ID))
	assert.ErrorIs(t, uc.Delete(ctx, resp.ID), domain.ErrNotFound)
}

func TestInvoiceUpdate_KeepsFrozenRatesAndTotals(t *testing.T) {
	s := singleItemOrder(10, d("123.43"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.InvoiceCreateRequest{
		PoID:  1,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 10}},
	})
	require.NoError(t, err)

	// Rates on the order change after the invoice is issued.
	s.po.CgstPercent = d("14")
	s.po.SgstPercent = d("14")

	updated, err := uc.Update(ctx, created.ID, dto.InvoiceUpdateRequest{
		InvoiceDate: time.Now(),
		VehicleNo:   "KA01AB1234",
		IsPaid:      true,
	})
	require.NoError(t, err)

	assert.True(t, updated.CgstPercent.Equal(d("9")), "rates are frozen at creation")
	assert.True(t, updated.TaxAmount.Equal(created.TaxAmount))
	assert.True(t, updated.GrandTotal.Equal(created.GrandTotal))
	assert.True(t, updated.IsPaid)
	assert.Equal(t, "KA01AB1234", updated.VehicleNo)
}

func TestInvoiceCreate_MissingOrder(t *testing.T) {
	s := singleItemOrder(5, d("10"), d("9"), d("9"), d("0"))
	uc := newUseCase(s)

	_, err := uc.Create(context.Background(), dto.InvoiceCreateRequest{
		PoID:  42,
		Items: []dto.InvoiceItemRequest{{PoItemID: 11, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
