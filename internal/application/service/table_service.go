package service

import (
	"context"
	"fmt"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

// TableService handles dining table management
type TableService struct {
	tableRepo repository.TableRepository
	orderRepo repository.OrderRepository
	audit     *AuditService
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, orderRepo repository.OrderRepository, audit *AuditService) *TableService {
	return &TableService{tableRepo: tableRepo, orderRepo: orderRepo, audit: audit}
}

// CreateTableInput represents the table creation input
type CreateTableInput struct {
	Number   int
	Capacity int
}

func (s *TableService) CreateTable(ctx context.Context, userID uuid.UUID, input *CreateTableInput) (*entity.Table, error) {
	if input.Number <= 0 || input.Capacity <= 0 {
		return nil, apperror.NewBadRequestError("Table number and capacity must be positive")
	}
	existing, err := s.tableRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Table %d already exists", input.Number))
	}

	table := &entity.Table{
		Number:   input.Number,
		Capacity: input.Capacity,
		Status:   enum.TableStatusAvailable,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionCreate, "Table", table.ID.String(), fmt.Sprintf("Table %d", table.Number), "")
	return table, nil
}

// UpdateTableInput represents updatable table fields
type UpdateTableInput struct {
	Capacity *int
	Status   *enum.TableStatus
}

func (s *TableService) UpdateTable(ctx context.Context, userID uuid.UUID, id uuid.UUID, input *UpdateTableInput) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, apperror.NewBadRequestError("Capacity must be positive")
		}
		table.Capacity = *input.Capacity
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid table status")
		}
		// A table with open orders cannot be manually freed.
		if *input.Status == enum.TableStatusAvailable {
			open, err := s.orderRepo.GetOpenByTable(ctx, id)
			if err != nil {
				return nil, err
			}
			if len(open) > 0 {
				return nil, apperror.NewConflictError("Table has unpaid orders")
			}
		}
		table.Status = *input.Status
	}

	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "Table", table.ID.String(), fmt.Sprintf("Table %d", table.Number), "")
	return table, nil
}

func (s *TableService) DeleteTable(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table == nil {
		return apperror.NewNotFoundError("Table")
	}
	open, err := s.orderRepo.GetOpenByTable(ctx, id)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return apperror.NewConflictError("Table has unpaid orders")
	}
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, enum.AuditActionDelete, "Table", id.String(), fmt.Sprintf("Table %d", table.Number), "")
	return nil
}

func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

func (s *TableService) ListTables(ctx context.Context, status *enum.TableStatus) ([]entity.Table, error) {
	return s.tableRepo.List(ctx, status)
}

// GetTableOrders returns a table's unpaid orders with their items.
func (s *TableService) GetTableOrders(ctx context.Context, id uuid.UUID) ([]entity.Order, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return s.orderRepo.GetOpenByTable(ctx, id)
}
