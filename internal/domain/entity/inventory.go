package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem tracks stock for a menu item. Reserved quantity is stock
// committed to unpaid orders; oversell quantity records sales accepted
// beyond available stock.
type InventoryItem struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	MenuItemID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"menu_item_id"`
	Quantity         int            `gorm:"not null" json:"quantity"`
	ReservedQuantity int            `gorm:"default:0" json:"reserved_quantity"`
	OversellQuantity int            `gorm:"default:0" json:"oversell_quantity"`
	Supplier         string         `gorm:"size:255" json:"supplier"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InStock reports whether any sellable stock remains.
func (i *InventoryItem) InStock() bool {
	return i.Quantity > 0
}
