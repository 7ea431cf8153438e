package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

// CashRegisterService manages till sessions: one open session per
// operator, cash in/out outside of sales, and reconciled closes.
type CashRegisterService struct {
	registerRepo repository.CashRegisterRepository
	audit        *AuditService
}

// NewCashRegisterService creates a new cash register service
func NewCashRegisterService(registerRepo repository.CashRegisterRepository, audit *AuditService) *CashRegisterService {
	return &CashRegisterService{registerRepo: registerRepo, audit: audit}
}

// Open starts a till session for the operator with a counted float.
func (s *CashRegisterService) Open(ctx context.Context, operatorID uuid.UUID, initialAmount int64) (*entity.CashRegister, error) {
	if initialAmount < 0 {
		return nil, apperror.NewBadRequestError("Initial amount cannot be negative")
	}
	open, err := s.registerRepo.GetOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.NewConflictError("Operator already has an open register session")
	}

	register := &entity.CashRegister{
		UserID:        operatorID,
		InitialAmount: initialAmount,
		FinalAmount:   initialAmount,
		IsOpen:        true,
		StartTime:     time.Now(),
	}
	if err := s.registerRepo.Create(ctx, register); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, operatorID, enum.AuditActionCreate, "CashRegister", register.ID.String(),
		"Register session", fmt.Sprintf("opened with %.2f", float64(initialAmount)/100))
	return register, nil
}

// CloseSessionResult pairs the closed session with its reconciliation.
type CloseSessionResult struct {
	Register *entity.CashRegister `json:"register"`
	Summary  *entity.CloseResult  `json:"summary"`
}

// Close ends the operator's open session, comparing declared cash and
// card totals against what the session recorded.
func (s *CashRegisterService) Close(ctx context.Context, operatorID uuid.UUID, declaredCash, declaredCard int64) (*CloseSessionResult, error) {
	register, err := s.registerRepo.GetOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewConflictError("No open register session for this operator")
	}

	summary := register.Close(declaredCash, declaredCard, time.Now())
	if err := s.registerRepo.Update(ctx, register); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, operatorID, enum.AuditActionUpdate, "CashRegister", register.ID.String(),
		"Register session", fmt.Sprintf("closed, cash difference %.2f", summary.CashDifference))
	return &CloseSessionResult{Register: register, Summary: summary}, nil
}

// InsertMoney adds cash to the open session outside of a sale.
func (s *CashRegisterService) InsertMoney(ctx context.Context, operatorID uuid.UUID, amount int64, reason string) (*entity.CashRegister, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	register, err := s.openSession(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	register.InsertMoney(amount)
	if err := s.registerRepo.Update(ctx, register); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, operatorID, enum.AuditActionUpdate, "CashRegister", register.ID.String(),
		"Register session", fmt.Sprintf("inserted %.2f: %s", float64(amount)/100, reason))
	return register, nil
}

// ExtractMoney removes cash from the open session outside of a sale.
func (s *CashRegisterService) ExtractMoney(ctx context.Context, operatorID uuid.UUID, amount int64, reason string) (*entity.CashRegister, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}
	register, err := s.openSession(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if register.InitialAmount+register.OperationsCash < amount {
		return nil, apperror.NewConflictError("Not enough cash in the register")
	}

	register.ExtractMoney(amount)
	if err := s.registerRepo.Update(ctx, register); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, operatorID, enum.AuditActionUpdate, "CashRegister", register.ID.String(),
		"Register session", fmt.Sprintf("extracted %.2f: %s", float64(amount)/100, reason))
	return register, nil
}

// Current returns the operator's open session, or a conflict error when
// none is open.
func (s *CashRegisterService) Current(ctx context.Context, operatorID uuid.UUID) (*entity.CashRegister, error) {
	return s.openSession(ctx, operatorID)
}

func (s *CashRegisterService) GetSession(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register session")
	}
	return register, nil
}

func (s *CashRegisterService) ListSessions(ctx context.Context, params *repository.CashRegisterFilterParams) ([]entity.CashRegister, int64, error) {
	return s.registerRepo.List(ctx, params)
}

func (s *CashRegisterService) openSession(ctx context.Context, operatorID uuid.UUID) (*entity.CashRegister, error) {
	register, err := s.registerRepo.GetOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewConflictError("No open register session for this operator")
	}
	return register, nil
}
