package repository

import (
	"context"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// CashRegisterRepository defines the interface for cash register session data operations
type CashRegisterRepository interface {
	Create(ctx context.Context, register *entity.CashRegister) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error)
	Update(ctx context.Context, register *entity.CashRegister) error
	// GetOpenByOperator returns the operator's open session, or nil when
	// none is open.
	GetOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*entity.CashRegister, error)
	List(ctx context.Context, params *CashRegisterFilterParams) ([]entity.CashRegister, int64, error)
}

// CashRegisterFilterParams contains filtering parameters for register session queries
type CashRegisterFilterParams struct {
	Pagination *pagination.PaginationParams
	OperatorID *uuid.UUID
	IsOpen     *bool
	StartDate  *time.Time
	EndDate    *time.Time
}
