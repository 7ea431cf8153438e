package pos

import (
	"testing"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func orderItem(name string, priceCents int64, qty, remaining int) entity.OrderItem {
	return entity.OrderItem{
		ID:                uuid.New(),
		MenuItemID:        uuid.New(),
		MenuItem:          &entity.MenuItem{Name: name},
		Price:             priceCents,
		Quantity:          qty,
		RemainingQuantity: remaining,
	}
}

func TestNewLedgerSelectsAllRemaining(t *testing.T) {
	items := []entity.OrderItem{
		orderItem("Cachupa", 55000, 2, 2),
		orderItem("Grogue", 15000, 4, 1),
		orderItem("Bica", 8000, 1, 0), // fully paid line
	}

	l := NewLedger(items)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.Quantity(items[0].ID))
	assert.Equal(t, 1, l.Quantity(items[1].ID))
	assert.Equal(t, 0, l.Quantity(items[2].ID))
}

func TestSetQuantityClampsToRemaining(t *testing.T) {
	item := orderItem("Cachupa", 55000, 5, 3)
	l := NewLedger([]entity.OrderItem{item})

	l.SetQuantity(item.ID, 5)
	assert.Equal(t, 3, l.Quantity(item.ID))

	l.SetQuantity(item.ID, -2)
	assert.Equal(t, 0, l.Quantity(item.ID))
	assert.True(t, l.IsEmpty())

	l.SetQuantity(item.ID, 2)
	assert.Equal(t, 2, l.Quantity(item.ID))
}

func TestSetQuantityZeroRemovesEntry(t *testing.T) {
	item := orderItem("Grogue", 15000, 2, 2)
	l := NewLedger([]entity.OrderItem{item})

	l.SetQuantity(item.ID, 0)

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Selection())
}

func TestToggleSelectsFullRemainingThenRemoves(t *testing.T) {
	item := orderItem("Cachupa", 55000, 5, 3)
	l := NewLedger([]entity.OrderItem{item})

	// Selected at 3 by NewLedger; toggle off, then back on.
	l.Toggle(item.ID)
	assert.Equal(t, 0, l.Quantity(item.ID))

	l.Toggle(item.ID)
	assert.Equal(t, 3, l.Quantity(item.ID))

	// Toggle after a manual reduction removes, not restores.
	l.SetQuantity(item.ID, 1)
	l.Toggle(item.ID)
	assert.Equal(t, 0, l.Quantity(item.ID))
}

func TestToggleIgnoresFullyPaidLine(t *testing.T) {
	item := orderItem("Bica", 8000, 1, 0)
	l := NewLedger([]entity.OrderItem{item})

	l.Toggle(item.ID)

	assert.True(t, l.IsEmpty())
}

func TestSelectAllAndSelectNone(t *testing.T) {
	items := []entity.OrderItem{
		orderItem("Cachupa", 55000, 2, 2),
		orderItem("Grogue", 15000, 4, 3),
	}
	l := NewLedger(items)

	l.SelectNone()
	assert.True(t, l.IsEmpty())

	l.SelectAll()
	assert.Equal(t, 2, l.Quantity(items[0].ID))
	assert.Equal(t, 3, l.Quantity(items[1].ID))
}

func TestSelectionReturnsCopy(t *testing.T) {
	item := orderItem("Cachupa", 55000, 2, 2)
	l := NewLedger([]entity.OrderItem{item})

	sel := l.Selection()
	sel[item.ID] = 99

	assert.Equal(t, 2, l.Quantity(item.ID))
}

func TestLinesPreserveOrder(t *testing.T) {
	items := []entity.OrderItem{
		orderItem("Cachupa", 55000, 2, 2),
		orderItem("Grogue", 15000, 4, 3),
		orderItem("Bica", 8000, 1, 1),
	}
	l := NewLedger(items)

	lines := l.Lines()

	assert.Len(t, lines, 3)
	assert.Equal(t, "Cachupa", lines[0].Name)
	assert.Equal(t, "Grogue", lines[1].Name)
	assert.Equal(t, "Bica", lines[2].Name)
}
