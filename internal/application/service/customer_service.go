package service

import (
	"context"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles customer management
type CustomerService struct {
	customerRepo repository.CustomerRepository
	audit        *AuditService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, audit *AuditService) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, audit: audit}
}

// CustomerInput represents the customer create input
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	TaxID   string
	Address string
}

// CreateCustomer creates a customer. The NIF is optional but validated
// and unique when given, so invoices can name the customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, userID uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if input.TaxID != "" {
		if err := ValidateTaxID(input.TaxID); err != nil {
			return nil, err
		}
		existing, err := s.customerRepo.GetByTaxID(ctx, input.TaxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this NIF already exists")
		}
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		TaxID:   input.TaxID,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionCreate, "Customer", customer.ID.String(), customer.Name, "")
	return customer, nil
}

// UpdateCustomerInput represents a partial customer update
type UpdateCustomerInput struct {
	Name    *string
	Email   *string
	Phone   *string
	TaxID   *string
	Address *string
}

// UpdateCustomer updates customer details.
func (s *CustomerService) UpdateCustomer(ctx context.Context, userID uuid.UUID, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.TaxID != nil && *input.TaxID != customer.TaxID {
		if *input.TaxID != "" {
			if err := ValidateTaxID(*input.TaxID); err != nil {
				return nil, err
			}
			existing, err := s.customerRepo.GetByTaxID(ctx, *input.TaxID)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, apperror.NewConflictError("A customer with this NIF already exists")
			}
		}
		customer.TaxID = *input.TaxID
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "Customer", customer.ID.String(), customer.Name, "")
	return customer, nil
}

// DeleteCustomer soft-deletes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, enum.AuditActionDelete, "Customer", id.String(), customer.Name, "")
	return nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, params, search)
}
