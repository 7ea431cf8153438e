package repository

import (
	"context"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type operationLogRepository struct {
	db *gorm.DB
}

// NewOperationLogRepository creates a new operation log repository
func NewOperationLogRepository(db *gorm.DB) domainRepo.OperationLogRepository {
	return &operationLogRepository{db: db}
}

func (r *operationLogRepository) Create(ctx context.Context, log *entity.OperationLog) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(log).Error
}

func (r *operationLogRepository) List(ctx context.Context, params *domainRepo.OperationLogFilterParams) ([]entity.OperationLog, int64, error) {
	var logs []entity.OperationLog
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.OperationLog{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Action != nil {
		query = query.Where("action = ?", *params.Action)
	}
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
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

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("User").
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}

func (r *operationLogRepository) GetByObject(ctx context.Context, entityType, objectID string) ([]entity.OperationLog, error) {
	var logs []entity.OperationLog
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("entity_type = ? AND object_id = ?", entityType, objectID).
		Preload("User").
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
