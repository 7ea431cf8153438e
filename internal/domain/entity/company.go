package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySettings is the single-row business configuration used by the
// fiscal services (invoice series, certificate, emitter identity).
type CompanySettings struct {
	ID                        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName               string    `gorm:"size:200;not null" json:"company_name"`
	TaxRegistrationNumber     string    `gorm:"size:20;not null" json:"tax_registration_number"`
	StreetName                string    `gorm:"size:200" json:"street_name"`
	BuildingNumber            string    `gorm:"size:20" json:"building_number,omitempty"`
	City                      string    `gorm:"size:100" json:"city"`
	PostalCode                string    `gorm:"size:20" json:"postal_code"`
	Telephone                 string    `gorm:"size:30" json:"telephone"`
	Email                     string    `gorm:"size:255" json:"email,omitempty"`
	Website                   string    `gorm:"size:255" json:"website,omitempty"`
	InvoiceSeries             string    `gorm:"size:20;default:'FT A'" json:"invoice_series"`
	CreditNoteSeries          string    `gorm:"size:20;default:'NC A'" json:"credit_note_series"`
	ReceiptSeries             string    `gorm:"size:20;default:'TV A'" json:"receipt_series"`
	SoftwareCertificateNumber string    `gorm:"size:60" json:"software_certificate_number"`
	SoftwareVersion           string    `gorm:"size:20;default:'1.0'" json:"software_version"`
	CurrencyCode              string    `gorm:"size:3;default:'CVE'" json:"currency_code"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

func (c *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CompanySettings) TableName() string {
	return "company_settings"
}
