package entity

import (
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Table is a physical restaurant table with capacity and occupancy status.
type Table struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number    int              `gorm:"uniqueIndex;not null" json:"number"`
	Capacity  int              `gorm:"not null" json:"capacity"`
	Status    enum.TableStatus `gorm:"size:2;default:'AV'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Table) TableName() string {
	return "tables"
}
