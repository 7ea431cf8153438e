package entity

import (
	"encoding/json"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IVARate is the flat IVA (VAT) rate applied to all orders, in percent.
const IVARate = 15

// Order is a customer order with line items and derived fiscal totals.
type Order struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	TableID         *uuid.UUID         `gorm:"type:uuid;index" json:"table_id,omitempty"`
	Status          enum.OrderStatus   `gorm:"size:20;default:'PENDING'" json:"status"`
	PaymentStatus   enum.PaymentStatus `gorm:"size:20;default:'PENDING'" json:"payment_status"`
	OrderType       enum.OrderType     `gorm:"size:20;not null" json:"order_type"`
	TotalAmount     int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalIVA        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	GrandTotal      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalPaid       int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OnlineOrderInfo string             `gorm:"type:text" json:"online_order_info,omitempty"`
	LastUpdatedByID *uuid.UUID         `gorm:"type:uuid" json:"last_updated_by,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Table    *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON converts cent-denominated totals to decimals for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalAmount     float64 `json:"total_amount"`
		TotalIVA        float64 `json:"total_iva"`
		GrandTotal      float64 `json:"grand_total"`
		TotalPaid       float64 `json:"total_paid"`
		RemainingAmount float64 `json:"remaining_amount"`
	}{
		Alias:           Alias(o),
		TotalAmount:     float64(o.TotalAmount) / 100,
		TotalIVA:        float64(o.TotalIVA) / 100,
		GrandTotal:      float64(o.GrandTotal) / 100,
		TotalPaid:       float64(o.TotalPaid) / 100,
		RemainingAmount: float64(o.RemainingAmount()) / 100,
	})
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// CalculateTotals recomputes total, IVA and grand total from the order's items.
func (o *Order) CalculateTotals() {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	o.TotalAmount = total
	o.TotalIVA = total * IVARate / 100
	o.GrandTotal = o.TotalAmount + o.TotalIVA
}

// RemainingAmount is the portion of the grand total not yet covered by payments.
func (o *Order) RemainingAmount() int64 {
	remaining := o.GrandTotal - o.TotalPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OrderItem is a single order line referencing a menu item.
// RemainingQuantity tracks how many units are not yet covered by a
// completed payment; it never exceeds Quantity.
type OrderItem struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Quantity          int              `gorm:"not null" json:"quantity"`
	RemainingQuantity int              `gorm:"not null" json:"remaining_quantity"`
	Price             int64            `gorm:"not null" json:"-"` // Unit price in cents, excluded from JSON
	PreparedIn        enum.PreparedIn  `gorm:"size:10;default:'BOTH'" json:"to_be_prepared_in"`
	Status            enum.OrderStatus `gorm:"size:20;default:'PENDING'" json:"item_status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// MarshalJSON converts the cent-denominated price to a decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Price  float64 `json:"price"`
		Total  float64 `json:"total"`
		IsPaid bool    `json:"is_paid"`
	}{
		Alias:  Alias(i),
		Price:  float64(i.Price) / 100,
		Total:  float64(i.Price*int64(i.Quantity)) / 100,
		IsPaid: i.IsPaid(),
	})
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

// IsPaid reports whether every unit of this line has been paid for.
func (i *OrderItem) IsPaid() bool {
	return i.RemainingQuantity == 0
}
