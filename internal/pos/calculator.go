package pos

import "github.com/dcruzdev/restopos/internal/domain/entity"

// Totals is the amount breakdown for the current selection. All values
// are in cents.
type Totals struct {
	Subtotal int64
	IVA      int64
	Payable  int64
}

// Calculate derives subtotal, IVA and payable from the ledger's current
// selection. IVA is flat 15%.
func Calculate(l *Ledger) Totals {
	var subtotal int64
	for id, qty := range l.selected {
		subtotal += l.lines[id].UnitPrice * int64(qty)
	}
	iva := subtotal * entity.IVARate / 100
	return Totals{
		Subtotal: subtotal,
		IVA:      iva,
		Payable:  subtotal + iva,
	}
}

// ChangeDue is the cash change owed to the customer. It is never
// negative and is zero for non-cash tenders handled by the caller.
func ChangeDue(tendered, payable int64) int64 {
	if tendered <= payable {
		return 0
	}
	return tendered - payable
}

// QuickAmount returns the preset tender for a percentage of the payable
// amount (the 50/75/100% buttons).
func QuickAmount(payable int64, percent int) int64 {
	return payable * int64(percent) / 100
}
