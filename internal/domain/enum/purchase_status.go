package enum

// PurchaseStatus is the lifecycle of a purchase order to a supplier.
type PurchaseStatus string

const (
	PurchaseStatusDraft             PurchaseStatus = "DRAFT"
	PurchaseStatusSubmitted         PurchaseStatus = "SUBMITTED"
	PurchaseStatusPartiallyReceived PurchaseStatus = "PARTIALLY_RECEIVED"
	PurchaseStatusReceived          PurchaseStatus = "RECEIVED"
	PurchaseStatusInvoiced          PurchaseStatus = "INVOICED"
	PurchaseStatusPaid              PurchaseStatus = "PAID"
	PurchaseStatusCancelled         PurchaseStatus = "CANCELLED"
)

func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusDraft, PurchaseStatusSubmitted, PurchaseStatusPartiallyReceived,
		PurchaseStatusReceived, PurchaseStatusInvoiced, PurchaseStatusPaid, PurchaseStatusCancelled:
		return true
	}
	return false
}
