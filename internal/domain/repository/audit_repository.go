package repository

import (
	"context"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// OperationLogRepository defines the interface for audit trail data operations
type OperationLogRepository interface {
	Create(ctx context.Context, log *entity.OperationLog) error
	List(ctx context.Context, params *OperationLogFilterParams) ([]entity.OperationLog, int64, error)
	GetByObject(ctx context.Context, entityType, objectID string) ([]entity.OperationLog, error)
}

// OperationLogFilterParams contains filtering parameters for audit queries
type OperationLogFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Action     *enum.AuditAction
	EntityType string
	StartDate  *time.Time
	EndDate    *time.Time
}
