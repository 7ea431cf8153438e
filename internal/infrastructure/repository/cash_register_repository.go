package repository

import (
	"context"
	"errors"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cashRegisterRepository struct {
	db *gorm.DB
}

// NewCashRegisterRepository creates a new cash register repository
func NewCashRegisterRepository(db *gorm.DB) domainRepo.CashRegisterRepository {
	return &cashRegisterRepository{db: db}
}

func (r *cashRegisterRepository) Create(ctx context.Context, register *entity.CashRegister) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(register).Error
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	var register entity.CashRegister
	err := dbFrom(ctx, r.db).WithContext(ctx).First(&register, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &register, err
}

func (r *cashRegisterRepository) Update(ctx context.Context, register *entity.CashRegister) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(register).Error
}

func (r *cashRegisterRepository) GetOpenByOperator(ctx context.Context, operatorID uuid.UUID) (*entity.CashRegister, error) {
	var register entity.CashRegister
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND is_open = ?", operatorID, true).
		Order("start_time DESC").
		First(&register).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &register, err
}

func (r *cashRegisterRepository) List(ctx context.Context, params *domainRepo.CashRegisterFilterParams) ([]entity.CashRegister, int64, error) {
	var registers []entity.CashRegister
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.CashRegister{})

	if params.OperatorID != nil {
		query = query.Where("user_id = ?", *params.OperatorID)
	}
	if params.IsOpen != nil {
		query = query.Where("is_open = ?", *params.IsOpen)
	}
	if params.StartDate != nil {
		query = query.Where("start_time >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("start_time <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("User").
		Order("start_time DESC").
		Find(&registers).Error

	return registers, total, err
}
