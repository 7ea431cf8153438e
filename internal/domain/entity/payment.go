package entity

import (
	"encoding/json"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinalConsumerTaxID is the well-known NIF used when an invoice has no
// identified customer (Consumidor Final).
const FinalConsumerTaxID = "999999999"

// Payment records money taken against an order, plus the fiscal document
// fields once the payment has been signed as an invoice. A signed payment
// is immutable.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method        enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	State         enum.PaymentState  `gorm:"size:20;default:'PENDING'" json:"payment_status"`
	TransactionID string             `gorm:"size:255" json:"transaction_id,omitempty"`

	CashRegisterID *uuid.UUID `gorm:"type:uuid;index" json:"cash_register_id,omitempty"`
	ProcessedByID  *uuid.UUID `gorm:"type:uuid" json:"processed_by,omitempty"`

	// Fiscal document fields (set by signing, e-Fatura CV).
	InvoiceType         enum.InvoiceType `gorm:"size:2;default:'FT'" json:"invoice_type"`
	InvoiceNo           string           `gorm:"size:60;uniqueIndex" json:"invoice_no,omitempty"`
	InvoiceDate         *time.Time       `gorm:"type:date" json:"invoice_date,omitempty"`
	InvoiceHash         string           `gorm:"size:64" json:"invoice_hash,omitempty"`
	PreviousInvoiceHash string           `gorm:"size:64" json:"previous_invoice_hash,omitempty"`
	HashAlgorithm       string           `gorm:"size:10" json:"hash_algorithm,omitempty"`
	IUD                 string           `gorm:"size:45;index" json:"iud,omitempty"`
	CustomerName        string           `gorm:"size:200" json:"customer_name,omitempty"`
	CustomerTaxID       string           `gorm:"size:20" json:"customer_tax_id,omitempty"`
	IsSigned            bool             `gorm:"default:false" json:"is_signed"`
	SignedAt            *time.Time       `json:"signed_at,omitempty"`
	EFaturaXMLPath      string           `gorm:"size:500" json:"-"`
	CreditedByID        *uuid.UUID       `gorm:"type:uuid" json:"credited_by,omitempty"` // NC reversing this invoice

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order *Order        `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Items []PaymentItem `gorm:"foreignKey:PaymentID" json:"items,omitempty"`
}

// MarshalJSON converts the cent-denominated amount to a decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}

// HasEFatura reports whether an e-invoice XML has been generated for this payment.
func (p *Payment) HasEFatura() bool {
	return p.EFaturaXMLPath != ""
}

// PaymentItem records which order line quantities a payment covered.
// It is the persisted form of the selection ledger at submission time
// and is never mutated after creation.
type PaymentItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time `json:"created_at"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// MarshalJSON converts the cent-denominated unit price to a decimal for API responses
func (i PaymentItem) MarshalJSON() ([]byte, error) {
	type Alias PaymentItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
	})
}

func (i *PaymentItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (PaymentItem) TableName() string {
	return "payment_items"
}
