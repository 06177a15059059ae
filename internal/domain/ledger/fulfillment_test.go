package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simindustries/bizdocs-api/internal/domain"
	"github.com/simindustries/bizdocs-api/internal/domain/ledger"
)

func item(id int64, ordered, invoiced int) ledger.ItemFulfillment {
	return ledger.ItemFulfillment{
		PoItemID:        id,
		LineNumber:      int(id),
		ItemDescription: "Machined bracket",
		UnitPrice:       decimal.NewFromInt(250),
		Ordered:         ordered,
		Invoiced:        invoiced,
	}
}

func TestPending_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 40, item(1, 100, 60).Pending())
	assert.Equal(t, 0, item(1, 100, 100).Pending())
	// Over-invoiced rows (legacy data) report zero, never negative.
	assert.Equal(t, 0, item(1, 100, 120).Pending())
}

func TestIsCompleted(t *testing.T) {
	assert.False(t, ledger.IsCompleted([]ledger.ItemFulfillment{item(1, 100, 60), item(2, 5, 5)}))
	assert.True(t, ledger.IsCompleted([]ledger.ItemFulfillment{item(1, 100, 100), item(2, 5, 5)}))

	// An order with no active items is vacuously completed.
	assert.True(t, ledger.IsCompleted(nil))
	assert.True(t, ledger.IsCompleted([]ledger.ItemFulfillment{}))
}

func TestValidateRequested_WithinPending(t *testing.T) {
	items := []ledger.ItemFulfillment{item(1, 100, 60), item(2, 5, 0)}
	err := ledger.ValidateRequested(items, map[int64]int{1: 40, 2: 5})
	assert.NoError(t, err)
}

func TestValidateRequested_ExceedsPending(t *testing.T) {
	items := []ledger.ItemFulfillment{item(1, 100, 60)}
	err := ledger.ValidateRequested(items, map[int64]int{1: 50})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a *domain.ValidationError, got %T", err)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "items", ve.Fields[0].Field)
	assert.Contains(t, ve.Fields[0].Message, "exceeds pending quantity")
}

func TestValidateRequested_NoPositiveQuantity(t *testing.T) {
	items := []ledger.ItemFulfillment{item(1, 100, 0)}

	err := ledger.ValidateRequested(items, map[int64]int{})
	require.Error(t, err)

	// Zero and negative quantities are ignored, so this is still "no items".
	err = ledger.ValidateRequested(items, map[int64]int{1: 0, 2: -3})
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields[0].Message, "at least one item")
}

func TestValidateRequested_UnknownItem(t *testing.T) {
	items := []ledger.ItemFulfillment{item(1, 100, 0)}
	err := ledger.ValidateRequested(items, map[int64]int{99: 1})
	require.Error(t, err)
	ve, _ := domain.AsValidationError(err)
	require.Len(t, ve.Fields, 1)
	assert.Contains(t, ve.Fields[0].Message, "does not belong")
}

// The partial-invoicing walkthrough: 100 ordered, 60 invoiced, a request for
// 50 must fail, a request for 40 must succeed and complete the order.
func TestValidateRequested_PartialInvoicingScenario(t *testing.T) {
	fresh := []ledger.ItemFulfillment{item(1, 100, 0)}
	require.NoError(t, ledger.ValidateRequested(fresh, map[int64]int{1: 60}))

	after60 := []ledger.ItemFulfillment{item(1, 100, 60)}
	require.Error(t, ledger.ValidateRequested(after60, map[int64]int{1: 50}))
	require.NoError(t, ledger.ValidateRequested(after60, map[int64]int{1: 40}))

	after100 := []ledger.ItemFulfillment{item(1, 100, 100)}
	assert.True(t, ledger.IsCompleted(after100))

	// Soft-deleting the 60-unit invoice restores pending and reopens the order.
	restored := []ledger.ItemFulfillment{item(1, 100, 40)}
	assert.Equal(t, 60, restored[0].Pending())
	assert.False(t, ledger.IsCompleted(restored))
}
