package request

import "time"

// PurchaseItemRequest is one line on a purchase order request
type PurchaseItemRequest struct {
	InventoryItemID string  `json:"inventory_item_id" binding:"required,uuid"`
	Quantity        int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" binding:"min=0"`
}

// CreatePurchaseRequest represents a purchase order create request
type CreatePurchaseRequest struct {
	SupplierID           string                `json:"supplier_id" binding:"required,uuid"`
	ExpectedDeliveryDate *time.Time            `json:"expected_delivery_date"`
	Notes                string                `json:"notes"`
	Items                []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveItemRequest records delivered units for one purchase line
type ReceiveItemRequest struct {
	ItemID   string `json:"item_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// ReceivePurchaseRequest books a goods receipt
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseStatusRequest applies a lifecycle transition
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=INVOICED PAID CANCELLED"`
}
