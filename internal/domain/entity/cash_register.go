package entity

import (
	"encoding/json"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashRegister is one till session for one operator, bracketed by explicit
// open and close actions. Payments can only be processed against an open
// session belonging to the operator.
type CashRegister struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	InitialAmount      int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	FinalAmount        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OperationsCash     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OperationsCard     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OperationsTransfer int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OperationsOther    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	StartTime          time.Time      `gorm:"autoCreateTime" json:"start_time"`
	EndTime            *time.Time     `json:"end_time,omitempty"`
	IsOpen             bool           `gorm:"default:true;index" json:"is_open"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// MarshalJSON converts cent-denominated totals to decimals for API responses
func (r CashRegister) MarshalJSON() ([]byte, error) {
	type Alias CashRegister
	return json.Marshal(&struct {
		Alias
		InitialAmount      float64 `json:"initial_amount"`
		FinalAmount        float64 `json:"final_amount"`
		OperationsCash     float64 `json:"operations_cash"`
		OperationsCard     float64 `json:"operations_card"`
		OperationsTransfer float64 `json:"operations_transfer"`
		OperationsOther    float64 `json:"operations_other"`
	}{
		Alias:              Alias(r),
		InitialAmount:      float64(r.InitialAmount) / 100,
		FinalAmount:        float64(r.FinalAmount) / 100,
		OperationsCash:     float64(r.OperationsCash) / 100,
		OperationsCard:     float64(r.OperationsCard) / 100,
		OperationsTransfer: float64(r.OperationsTransfer) / 100,
		OperationsOther:    float64(r.OperationsOther) / 100,
	})
}

func (r *CashRegister) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (CashRegister) TableName() string {
	return "cash_registers"
}

// AddTransaction records a payment on the register, bucketed by method.
func (r *CashRegister) AddTransaction(amount int64, method enum.PaymentMethod) {
	switch {
	case method == enum.PaymentMethodCash:
		r.OperationsCash += amount
	case method.IsCard():
		r.OperationsCard += amount
	case method == enum.PaymentMethodOnline:
		r.OperationsTransfer += amount
	default:
		r.OperationsOther += amount
	}
	r.FinalAmount += amount
}

// InsertMoney adds cash to the till outside of a sale.
func (r *CashRegister) InsertMoney(amount int64) {
	r.OperationsCash += amount
	r.FinalAmount += amount
}

// ExtractMoney removes cash from the till outside of a sale.
func (r *CashRegister) ExtractMoney(amount int64) {
	r.OperationsCash -= amount
	r.FinalAmount -= amount
}

// CloseResult reports declared vs expected amounts when a session closes.
type CloseResult struct {
	ExpectedCash   float64 `json:"expected_cash"`
	DeclaredCash   float64 `json:"declared_cash"`
	CashDifference float64 `json:"cash_difference"`
	ExpectedCard   float64 `json:"expected_card"`
	DeclaredCard   float64 `json:"declared_card"`
	CardDifference float64 `json:"card_difference"`
}

// Close ends the session and computes the declared/expected differences.
func (r *CashRegister) Close(declaredCash, declaredCard int64, at time.Time) *CloseResult {
	r.FinalAmount = r.InitialAmount + r.OperationsCash + r.OperationsCard
	r.EndTime = &at
	r.IsOpen = false

	expectedCash := r.InitialAmount + r.OperationsCash
	expectedCard := r.OperationsCard

	return &CloseResult{
		ExpectedCash:   float64(expectedCash) / 100,
		DeclaredCash:   float64(declaredCash) / 100,
		CashDifference: float64(declaredCash-expectedCash) / 100,
		ExpectedCard:   float64(expectedCard) / 100,
		DeclaredCard:   float64(declaredCard) / 100,
		CardDifference: float64(declaredCard-expectedCard) / 100,
	}
}
