package entity

import (
	"encoding/json"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuCategory groups menu items (drinks, appetizers, main course).
type MenuCategory struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	PreparedIn enum.PreparedIn `gorm:"size:10;default:'BOTH'" json:"prepared_in"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem is an orderable item with pricing and availability.
type MenuItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Ingredients  string         `gorm:"type:text" json:"ingredients,omitempty"`
	Price        int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Availability bool           `gorm:"default:true" json:"availability"`
	CategoryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Quantifiable bool           `gorm:"default:true" json:"is_quantifiable"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Category *MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// MarshalJSON converts the cent-denominated price to a decimal for API responses
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type Alias MenuItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(m),
		Price: float64(m.Price) / 100,
	})
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (MenuItem) TableName() string {
	return "menu_items"
}
