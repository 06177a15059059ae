package documents_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/dto"
	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/internal/domain/repository"
)

var errItemInsert = errors.New("insert item: connection reset")

// docStore is the in-memory database behind the fake document repos. The
// failChallanItemAt / failQuotationItemAt serial numbers make CreateItem fail
// mid-loop, the way a dropped connection would.
type docStore struct {
	challans   map[int64]*entity.DeliveryChallan
	dcItems    []*entity.DeliveryChallanItem
	quotations map[int64]*entity.Quotation
	qItems     []*entity.QuotationItem
	nextID     int64

	failChallanItemAt   int
	failQuotationItemAt int
}

func newDocStore() *docStore {
	return &docStore{
		challans:   map[int64]*entity.DeliveryChallan{},
		quotations: map[int64]*entity.Quotation{},
	}
}

type docSnapshot struct {
	challans   map[int64]*entity.DeliveryChallan
	dcItems    []*entity.DeliveryChallanItem
	quotations map[int64]*entity.Quotation
	qItems     []*entity.QuotationItem
	nextID     int64
}

func (s *docStore) snapshot() docSnapshot {
	snap := docSnapshot{
		challans:   map[int64]*entity.DeliveryChallan{},
		quotations: map[int64]*entity.Quotation{},
		dcItems:    append([]*entity.DeliveryChallanItem(nil), s.dcItems...),
		qItems:     append([]*entity.QuotationItem(nil), s.qItems...),
		nextID:     s.nextID,
	}
	for id, dc := range s.challans {
		snap.challans[id] = dc
	}
	for id, q := range s.quotations {
		snap.quotations[id] = q
	}
	return snap
}

func (s *docStore) restore(snap docSnapshot) {
	s.challans = snap.challans
	s.dcItems = snap.dcItems
	s.quotations = snap.quotations
	s.qItems = snap.qItems
	s.nextID = snap.nextID
}

type fakeChallanRepo struct{ s *docStore }

func (r *fakeChallanRepo) GetAll() ([]*entity.DeliveryChallan, error) {
	out := []*entity.DeliveryChallan{}
	for _, dc := range r.s.challans {
		if !dc.IsDeleted {
			out = append(out, dc)
		}
	}
	return out, nil
}
func (r *fakeChallanRepo) GetByID(dcID int64) (*entity.DeliveryChallan, error) {
	return r.s.challans[dcID], nil
}
func (r *fakeChallanRepo) Create(dc *entity.DeliveryChallan) (int64, error) {
	r.s.nextID++
	dc.ID = r.s.nextID
	r.s.challans[dc.ID] = dc
	return dc.ID, nil
}
func (r *fakeChallanRepo) CreateItem(item *entity.DeliveryChallanItem) error {
	if r.s.failChallanItemAt > 0 && item.SlNo == r.s.failChallanItemAt {
		return errItemInsert
	}
	r.s.dcItems = append(r.s.dcItems, item)
	return nil
}
func (r *fakeChallanRepo) SoftDelete(dcID int64) error {
	dc := r.s.challans[dcID]
	if dc == nil {
		return domain.ErrNotFound
	}
	dc.IsDeleted = true
	return nil
}
func (r *fakeChallanRepo) NextDcNumber() (string, error) {
	return fmt.Sprintf("SIM/DC/%04d", len(r.s.challans)+1), nil
}
func (r *fakeChallanRepo) GetByDateRange(from, to time.Time) ([]*entity.DeliveryChallan, error) {
	return r.GetAll()
}

type fakeQuotationRepo struct{ s *docStore }

func (r *fakeQuotationRepo) GetAll() ([]*entity.Quotation, error) {
	out := []*entity.Quotation{}
	for _, q := range r.s.quotations {
		if !q.IsDeleted {
			out = append(out, q)
		}
	}
	return out, nil
}
func (r *fakeQuotationRepo) GetByID(quotationID int64) (*entity.Quotation, error) {
	return r.s.quotations[quotationID], nil
}
func (r *fakeQuotationRepo) Create(q *entity.Quotation) (int64, error) {
	r.s.nextID++
	q.ID = r.s.nextID
	r.s.quotations[q.ID] = q
	return q.ID, nil
}
func (r *fakeQuotationRepo) CreateItem(item *entity.QuotationItem) error {
	if r.s.failQuotationItemAt > 0 && item.SlNo == r.s.failQuotationItemAt {
		return errItemInsert
	}
	r.s.qItems = append(r.s.qItems, item)
	return nil
}
func (r *fakeQuotationRepo) SoftDelete(quotationID int64) error {
	q := r.s.quotations[quotationID]
	if q == nil {
		return domain.ErrNotFound
	}
	q.IsDeleted = true
	return nil
}
func (r *fakeQuotationRepo) NextQuotationNo() (string, error) {
	return fmt.Sprintf("SIM/QN/%03d/2526", len(r.s.quotations)+1), nil
}
func (r *fakeQuotationRepo) GetByDateRange(from, to time.Time) ([]*entity.Quotation, error) {
	return r.GetAll()
}

type fakeDocCustomerRepo struct{}

func (fakeDocCustomerRepo) GetAll() ([]*entity.Customer, error) { return nil, nil }
func (fakeDocCustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	return &entity.Customer{ID: id, CustomerName: "Acme Fabricators"}, nil
}
func (fakeDocCustomerRepo) Create(c *entity.Customer) (int64, error)     { return 0, nil }
func (fakeDocCustomerRepo) Update(c *entity.Customer) error              { return nil }
func (fakeDocCustomerRepo) SoftDelete(id int64) error                    { return nil }
func (fakeDocCustomerRepo) CodeExists(c string, x int64) (bool, error)   { return false, nil }
func (fakeDocCustomerRepo) GetAllStates() ([]*entity.IndianState, error) { return nil, nil }

// fakeDocsTxRunner restores the store to its pre-callback state when the
// callback fails, the way a rolled-back transaction would.
type fakeDocsTxRunner struct{ s *docStore }

func (t *fakeDocsTxRunner) RunDocuments(ctx context.Context, fn func(
	challanRepo repository.DeliveryChallanRepository,
	quotationRepo repository.QuotationRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeChallanRepo{t.s}, &fakeQuotationRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

func newChallanUseCase(s *docStore) *documents.ChallanUseCase {
	return documents.NewChallanUseCase(
		&fakeDocsTxRunner{s},
		&fakeChallanRepo{s},
		fakeDocCustomerRepo{},
		nil,
		entity.CompanyProfile{},
	)
}

func newQuotationUseCase(s *docStore) *documents.QuotationUseCase {
	return documents.NewQuotationUseCase(
		&fakeDocsTxRunner{s},
		&fakeQuotationRepo{s},
		fakeDocCustomerRepo{},
		nil,
		entity.CompanyProfile{},
	)
}

func TestChallanCreate_AssignsNumberAndSerials(t *testing.T) {
	s := newDocStore()
	uc := newChallanUseCase(s)

	resp, err := uc.Create(context.Background(), 1, dto.ChallanRequest{
		CustomerID: 7,
		DcDate:     time.Now(),
		VehicleNo:  "KA01AB1234",
		Items: []dto.ChallanItemRequest{
			{Description: "MS bracket", Quantity: 10, Unit: "nos"},
			{Description: "Base plate", Quantity: 4, Unit: "nos"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SIM/DC/0001", resp.DcNumber)
	assert.Equal(t, "Acme Fabricators", resp.CustomerName)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 1, resp.Items[0].SlNo)
	assert.Equal(t, 2, resp.Items[1].SlNo)
}

func TestChallanCreate_ValidationRejected(t *testing.T) {
	s := newDocStore()
	uc := newChallanUseCase(s)

	_, err := uc.Create(context.Background(), 1, dto.ChallanRequest{
		CustomerID: 7,
		Items:      []dto.ChallanItemRequest{{Description: "  ", Quantity: 0}},
	})
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Len(t, ve.Fields, 2)
	assert.Empty(t, s.challans)
}

// A failed item insert must not leave a header row behind.
func TestChallanCreate_ItemFailureLeavesNothing(t *testing.T) {
	s := newDocStore()
	s.failChallanItemAt = 2
	uc := newChallanUseCase(s)

	_, err := uc.Create(context.Background(), 1, dto.ChallanRequest{
		CustomerID: 7,
		DcDate:     time.Now(),
		Items: []dto.ChallanItemRequest{
			{Description: "MS bracket", Quantity: 10},
			{Description: "Base plate", Quantity: 4},
		},
	})
	require.ErrorIs(t, err, errItemInsert)

	assert.Empty(t, s.challans)
	assert.Empty(t, s.dcItems)

	next, err := (&fakeChallanRepo{s}).NextDcNumber()
	require.NoError(t, err)
	assert.Equal(t, "SIM/DC/0001", next, "the failed challan must not consume a number")
}

func TestQuotationCreate_ItemFailureLeavesNothing(t *testing.T) {
	s := newDocStore()
	s.failQuotationItemAt = 2
	uc := newQuotationUseCase(s)

	_, err := uc.Create(context.Background(), 1, dto.QuotationRequest{
		CustomerID: 7,
		Date:       time.Now(),
		Items: []dto.QuotationItemRequest{
			{Description: "MS bracket", Quantity: 10, UnitPrice: decimal.NewFromInt(250)},
			{Description: "Base plate", Quantity: 4, UnitPrice: decimal.NewFromInt(900)},
		},
	})
	require.ErrorIs(t, err, errItemInsert)

	assert.Empty(t, s.quotations)
	assert.Empty(t, s.qItems)
}

func TestQuotationCreate_LineTotals(t *testing.T) {
	s := newDocStore()
	uc := newQuotationUseCase(s)

	resp, err := uc.Create(context.Background(), 1, dto.QuotationRequest{
		CustomerID: 7,
		Date:       time.Now(),
		Items: []dto.QuotationItemRequest{
			{Description: "MS bracket", Quantity: 10, UnitPrice: decimal.RequireFromString("250.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SIM/QN/001/2526", resp.QuotationNo)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].TotalAmount.Equal(decimal.RequireFromString("2505")))
}