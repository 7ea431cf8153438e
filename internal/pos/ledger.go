// Package pos implements the point-of-sale payment reconciliation flow:
// selecting unpaid order line quantities, computing the amount owed with
// IVA, and guarding payment submission against double-sends and missing
// register sessions. It is pure domain logic with no HTTP or storage
// dependencies so terminals and tests can drive it directly.
package pos

import (
	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/google/uuid"
)

// LineItem is the ledger's view of one order line: what it costs and how
// many units are still unpaid.
type LineItem struct {
	ID                uuid.UUID // order line ID
	MenuItemID        uuid.UUID
	Name              string
	UnitPrice         int64 // cents
	Quantity          int
	RemainingQuantity int
}

// Ledger maps order line IDs to the quantity of that line the operator
// wants to pay now. Entries are clamped to the line's remaining quantity
// and entries at zero are removed rather than retained.
type Ledger struct {
	lines    map[uuid.UUID]LineItem
	order    []uuid.UUID // stable iteration order for display and receipts
	selected map[uuid.UUID]int
}

// NewLedger builds a ledger from an order's line items, selecting every
// unpaid line at its full remaining quantity.
func NewLedger(items []entity.OrderItem) *Ledger {
	l := &Ledger{
		lines:    make(map[uuid.UUID]LineItem, len(items)),
		selected: make(map[uuid.UUID]int, len(items)),
	}
	for _, it := range items {
		line := LineItem{
			ID:                it.ID,
			MenuItemID:        it.MenuItemID,
			UnitPrice:         it.Price,
			Quantity:          it.Quantity,
			RemainingQuantity: it.RemainingQuantity,
		}
		if it.MenuItem != nil {
			line.Name = it.MenuItem.Name
		}
		l.lines[it.ID] = line
		l.order = append(l.order, it.ID)
		if it.RemainingQuantity > 0 {
			l.selected[it.ID] = it.RemainingQuantity
		}
	}
	return l
}

// Toggle removes the line if selected, otherwise selects it at its full
// remaining quantity.
func (l *Ledger) Toggle(lineID uuid.UUID) {
	if _, ok := l.selected[lineID]; ok {
		delete(l.selected, lineID)
		return
	}
	line, ok := l.lines[lineID]
	if !ok || line.RemainingQuantity == 0 {
		return
	}
	l.selected[lineID] = line.RemainingQuantity
}

// SetQuantity sets the quantity-to-pay for a line, clamped to
// [0, remaining]. A clamped value of zero removes the entry.
func (l *Ledger) SetQuantity(lineID uuid.UUID, quantity int) {
	line, ok := l.lines[lineID]
	if !ok {
		return
	}
	if quantity < 0 {
		quantity = 0
	}
	if quantity > line.RemainingQuantity {
		quantity = line.RemainingQuantity
	}
	if quantity == 0 {
		delete(l.selected, lineID)
		return
	}
	l.selected[lineID] = quantity
}

// SelectAll selects every unpaid line at its full remaining quantity.
func (l *Ledger) SelectAll() {
	for id, line := range l.lines {
		if line.RemainingQuantity > 0 {
			l.selected[id] = line.RemainingQuantity
		}
	}
}

// SelectNone clears the ledger.
func (l *Ledger) SelectNone() {
	l.selected = make(map[uuid.UUID]int)
}

// Quantity returns the selected quantity for a line (0 when unselected).
func (l *Ledger) Quantity(lineID uuid.UUID) int {
	return l.selected[lineID]
}

// IsEmpty reports whether nothing is selected.
func (l *Ledger) IsEmpty() bool {
	return len(l.selected) == 0
}

// Len returns the number of selected entries.
func (l *Ledger) Len() int {
	return len(l.selected)
}

// Selection returns a copy of the selected quantities, suitable for
// freezing into a payment request.
func (l *Ledger) Selection() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(l.selected))
	for id, qty := range l.selected {
		out[id] = qty
	}
	return out
}

// Lines returns the line items in their original order.
func (l *Ledger) Lines() []LineItem {
	out := make([]LineItem, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.lines[id])
	}
	return out
}
