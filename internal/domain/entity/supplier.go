package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a goods supplier. The tax and billing-address fields are
// required by the SAF-T CV export.
type Supplier struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TaxID          string         `gorm:"size:20;uniqueIndex;not null" json:"tax_id"` // 9-digit NIF
	CompanyName    string         `gorm:"size:200;not null" json:"company_name"`
	ContactPerson  string         `gorm:"size:200" json:"contact_person,omitempty"`
	StreetName     string         `gorm:"size:200;not null" json:"street_name"`
	BuildingNumber string         `gorm:"size:20" json:"building_number,omitempty"`
	City           string         `gorm:"size:100;not null" json:"city"`
	PostalCode     string         `gorm:"size:20;not null" json:"postal_code"`
	Region         string         `gorm:"size:100" json:"region,omitempty"`
	Country        string         `gorm:"size:2;default:'CV'" json:"country"`
	Telephone      string         `gorm:"size:30" json:"telephone,omitempty"`
	Email          string         `gorm:"size:255" json:"email,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Supplier) TableName() string {
	return "suppliers"
}
