package service

import (
	"context"
	"log"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/google/uuid"
)

// AuditService records and queries the append-only operation log.
type AuditService struct {
	logRepo repository.OperationLogRepository
}

// NewAuditService creates a new audit service
func NewAuditService(logRepo repository.OperationLogRepository) *AuditService {
	return &AuditService{logRepo: logRepo}
}

// Record appends an audit entry. Audit failures are logged but never
// abort the operation being audited.
func (s *AuditService) Record(ctx context.Context, userID uuid.UUID, action enum.AuditAction, entityType, objectID, objectRepr, changeMessage string) {
	entry := &entity.OperationLog{
		UserID:        userID,
		Action:        action,
		EntityType:    entityType,
		ObjectID:      objectID,
		ObjectRepr:    objectRepr,
		ChangeMessage: changeMessage,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s %s %s: %v", action, entityType, objectID, err)
	}
}

// List returns audit entries matching the filter.
func (s *AuditService) List(ctx context.Context, params *repository.OperationLogFilterParams) ([]entity.OperationLog, int64, error) {
	return s.logRepo.List(ctx, params)
}

// History returns all audit entries for one object, newest first.
func (s *AuditService) History(ctx context.Context, entityType, objectID string) ([]entity.OperationLog, error) {
	return s.logRepo.GetByObject(ctx, entityType, objectID)
}
