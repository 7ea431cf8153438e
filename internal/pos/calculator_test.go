package pos

import (
	"testing"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestCalculateAppliesIVA(t *testing.T) {
	// 2 x 100.00 => subtotal 200.00, IVA 30.00, payable 230.00.
	item := orderItem("Cachupa", 10000, 2, 2)
	l := NewLedger([]entity.OrderItem{item})

	totals := Calculate(l)

	assert.Equal(t, int64(20000), totals.Subtotal)
	assert.Equal(t, int64(3000), totals.IVA)
	assert.Equal(t, int64(23000), totals.Payable)
}

func TestCalculateFollowsSelection(t *testing.T) {
	items := []entity.OrderItem{
		orderItem("Cachupa", 55000, 2, 2),
		orderItem("Grogue", 15000, 4, 4),
	}
	l := NewLedger(items)
	l.SetQuantity(items[0].ID, 1)
	l.SetQuantity(items[1].ID, 2)

	totals := Calculate(l)

	assert.Equal(t, int64(85000), totals.Subtotal)
	assert.Equal(t, int64(85000*entity.IVARate/100), totals.IVA)
	assert.Equal(t, totals.Subtotal+totals.IVA, totals.Payable)
}

func TestCalculateEmptySelectionIsZero(t *testing.T) {
	l := NewLedger(nil)

	totals := Calculate(l)

	assert.Equal(t, Totals{}, totals)
}

func TestChangeDueNeverNegative(t *testing.T) {
	// Payable 230.00 tendered 250.00 => change 20.00.
	assert.Equal(t, int64(2000), ChangeDue(25000, 23000))
	assert.Equal(t, int64(0), ChangeDue(23000, 23000))
	assert.Equal(t, int64(0), ChangeDue(10000, 23000))
}

func TestQuickAmountPresets(t *testing.T) {
	assert.Equal(t, int64(11500), QuickAmount(23000, 50))
	assert.Equal(t, int64(17250), QuickAmount(23000, 75))
	assert.Equal(t, int64(23000), QuickAmount(23000, 100))
}
