package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&payment, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByIUD(ctx context.Context, iud string) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&payment, "iud = ?", iud).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Payment{})

	if params.Method != nil {
		query = query.Where("method = ?", *params.Method)
	}
	if params.State != nil {
		query = query.Where("state = ?", *params.State)
	}
	if params.InvoiceType != nil {
		query = query.Where("invoice_type = ?", *params.InvoiceType)
	}
	if params.OrderID != nil {
		query = query.Where("order_id = ?", *params.OrderID)
	}
	if params.CashRegisterID != nil {
		query = query.Where("cash_register_id = ?", *params.CashRegisterID)
	}
	if params.ProcessedByID != nil {
		query = query.Where("processed_by_id = ?", *params.ProcessedByID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Order").
		Order(sortBy + " " + sortOrder).
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Order.Table").
		Preload("Items.MenuItem").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetLastSigned(ctx context.Context, invoiceType enum.InvoiceType) (*entity.Payment, error) {
	var payment entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("invoice_type = ? AND is_signed = ?", invoiceType, true).
		Order("signed_at DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) CountByTypeAndYear(ctx context.Context, invoiceType enum.InvoiceType, year int) (int64, error) {
	var count int64
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Payment{}).
		Where("invoice_type = ? AND invoice_no <> '' AND created_at >= ? AND created_at < ?", invoiceType, start, end).
		Count(&count).Error
	return count, err
}

func (r *paymentRepository) ListSignedBetween(ctx context.Context, start, end time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("is_signed = ? AND signed_at >= ? AND signed_at <= ?", true, start, end).
		Preload("Items.MenuItem").
		Preload("Order").
		Order("signed_at").
		Find(&payments).Error
	return payments, err
}

type paymentItemRepository struct {
	db *gorm.DB
}

// NewPaymentItemRepository creates a new payment item repository
func NewPaymentItemRepository(db *gorm.DB) domainRepo.PaymentItemRepository {
	return &paymentItemRepository{db: db}
}

func (r *paymentItemRepository) CreateBatch(ctx context.Context, items []entity.PaymentItem) error {
	if len(items) == 0 {
		return nil
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *paymentItemRepository) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentItem, error) {
	var items []entity.PaymentItem
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("MenuItem").
		Where("payment_id = ?", paymentID).
		Find(&items).Error
	return items, err
}
