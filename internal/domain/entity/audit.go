package entity

import (
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperationLog is an append-only audit record of create/update/delete
// operations performed through the API.
type OperationLog struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Action        enum.AuditAction `gorm:"size:10;not null" json:"action"`
	EntityType    string           `gorm:"size:100;not null;index" json:"entity_type"`
	ObjectID      string           `gorm:"size:64;not null" json:"object_id"`
	ObjectRepr    string           `gorm:"size:200" json:"object_repr"`
	ChangeMessage string           `gorm:"type:text" json:"change_message"`
	CreatedAt     time.Time        `gorm:"index" json:"timestamp"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (l *OperationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (OperationLog) TableName() string {
	return "operation_logs"
}
