package entity

import (
	"encoding/json"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOrder tracks goods ordered from a supplier before they arrive.
// PONumber follows the OC/YYYY/NNNNN sequence.
type PurchaseOrder struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	PONumber             string              `gorm:"size:60;uniqueIndex;not null" json:"po_number"`
	SupplierID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Status               enum.PurchaseStatus `gorm:"size:20;default:'DRAFT'" json:"status"`
	OrderDate            time.Time           `gorm:"type:date;not null" json:"order_date"`
	ExpectedDeliveryDate *time.Time          `gorm:"type:date" json:"expected_delivery_date,omitempty"`
	TotalAmount          int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Notes                string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID          *uuid.UUID          `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	DeletedAt            gorm.DeletedAt      `gorm:"index" json:"-"`

	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// MarshalJSON converts the cent-denominated total to a decimal for API responses
func (p PurchaseOrder) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrder
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(p),
		TotalAmount: float64(p.TotalAmount) / 100,
	})
}

func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// CalculateTotal recomputes the order total from its line items.
func (p *PurchaseOrder) CalculateTotal() {
	var total int64
	for _, item := range p.Items {
		total += item.UnitPrice * int64(item.QuantityOrdered)
	}
	p.TotalAmount = total
}

// RefreshStatus derives the received status from line-item quantities.
func (p *PurchaseOrder) RefreshStatus() {
	if len(p.Items) == 0 {
		return
	}
	allReceived := true
	anyReceived := false
	for _, item := range p.Items {
		if item.ReceivedQuantity < item.QuantityOrdered {
			allReceived = false
		}
		if item.ReceivedQuantity > 0 {
			anyReceived = true
		}
	}
	if allReceived {
		p.Status = enum.PurchaseStatusReceived
	} else if anyReceived {
		p.Status = enum.PurchaseStatusPartiallyReceived
	}
}

// PurchaseOrderItem is a line on a purchase order, linked to an inventory item.
type PurchaseOrderItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	InventoryItemID  uuid.UUID `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	QuantityOrdered  int       `gorm:"not null" json:"quantity_ordered"`
	ReceivedQuantity int       `gorm:"default:0" json:"received_quantity"`
	UnitPrice        int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	InventoryItem *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
}

// MarshalJSON converts the cent-denominated unit price to a decimal for API responses
func (i PurchaseOrderItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseOrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		LineTotal: float64(i.UnitPrice*int64(i.QuantityOrdered)) / 100,
	})
}

func (i *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
