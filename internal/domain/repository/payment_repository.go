package repository

import (
	"context"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Payment, error)
	GetByIUD(ctx context.Context, iud string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
	// GetWithItems loads the payment with its covered order lines and order.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	// GetLastSigned returns the most recent signed document of the given
	// type, used to link the fiscal hash chain. Returns nil when the
	// chain is empty.
	GetLastSigned(ctx context.Context, invoiceType enum.InvoiceType) (*entity.Payment, error)
	// CountByTypeAndYear returns how many documents of the given type were
	// issued in a year, used to allocate the next sequential number.
	CountByTypeAndYear(ctx context.Context, invoiceType enum.InvoiceType, year int) (int64, error)
	// ListSignedBetween returns signed documents in chronological order for
	// chain validation and SAF-T export.
	ListSignedBetween(ctx context.Context, start, end time.Time) ([]entity.Payment, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination     *pagination.PaginationParams
	Method         *enum.PaymentMethod
	State          *enum.PaymentState
	InvoiceType    *enum.InvoiceType
	OrderID        *uuid.UUID
	CashRegisterID *uuid.UUID
	ProcessedByID  *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}

// PaymentItemRepository defines the interface for payment coverage rows
type PaymentItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PaymentItem) error
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentItem, error)
}
