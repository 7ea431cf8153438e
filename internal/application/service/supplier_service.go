package service

import (
	"context"
	"fmt"
	"unicode"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/google/uuid"
)

// SupplierService handles supplier management
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	audit        *AuditService
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, audit *AuditService) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, audit: audit}
}

// SupplierInput represents the supplier create/update input
type SupplierInput struct {
	TaxID          string
	CompanyName    string
	ContactPerson  string
	StreetName     string
	BuildingNumber string
	City           string
	PostalCode     string
	Region         string
	Country        string
	Telephone      string
	Email          string
}

// CreateSupplier creates a supplier after validating its NIF.
func (s *SupplierService) CreateSupplier(ctx context.Context, userID uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	if err := ValidateTaxID(input.TaxID); err != nil {
		return nil, err
	}
	if input.CompanyName == "" {
		return nil, apperror.NewBadRequestError("Company name is required")
	}

	existing, err := s.supplierRepo.GetByTaxID(ctx, input.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A supplier with this NIF already exists")
	}

	country := input.Country
	if country == "" {
		country = "CV"
	}
	supplier := &entity.Supplier{
		TaxID:          input.TaxID,
		CompanyName:    input.CompanyName,
		ContactPerson:  input.ContactPerson,
		StreetName:     input.StreetName,
		BuildingNumber: input.BuildingNumber,
		City:           input.City,
		PostalCode:     input.PostalCode,
		Region:         input.Region,
		Country:        country,
		Telephone:      input.Telephone,
		Email:          input.Email,
		IsActive:       true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionCreate, "Supplier", supplier.ID.String(), supplier.CompanyName, "")
	return supplier, nil
}

// UpdateSupplierInput represents a partial supplier update
type UpdateSupplierInput struct {
	CompanyName    *string
	ContactPerson  *string
	StreetName     *string
	BuildingNumber *string
	City           *string
	PostalCode     *string
	Region         *string
	Country        *string
	Telephone      *string
	Email          *string
	IsActive       *bool
}

// UpdateSupplier updates supplier details. The NIF is immutable once set.
func (s *SupplierService) UpdateSupplier(ctx context.Context, userID uuid.UUID, id uuid.UUID, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.CompanyName != nil {
		supplier.CompanyName = *input.CompanyName
	}
	if input.ContactPerson != nil {
		supplier.ContactPerson = *input.ContactPerson
	}
	if input.StreetName != nil {
		supplier.StreetName = *input.StreetName
	}
	if input.BuildingNumber != nil {
		supplier.BuildingNumber = *input.BuildingNumber
	}
	if input.City != nil {
		supplier.City = *input.City
	}
	if input.PostalCode != nil {
		supplier.PostalCode = *input.PostalCode
	}
	if input.Region != nil {
		supplier.Region = *input.Region
	}
	if input.Country != nil {
		supplier.Country = *input.Country
	}
	if input.Telephone != nil {
		supplier.Telephone = *input.Telephone
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "Supplier", supplier.ID.String(), supplier.CompanyName, "")
	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier.
func (s *SupplierService) DeleteSupplier(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, userID, enum.AuditActionDelete, "Supplier", id.String(), supplier.CompanyName, "")
	return nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, params, search)
}

// ValidateTaxID checks a Cape Verde NIF: exactly nine digits.
func ValidateTaxID(taxID string) error {
	if len(taxID) != 9 {
		return apperror.NewBadRequestError(fmt.Sprintf("NIF must have 9 digits, got %d", len(taxID)))
	}
	for _, r := range taxID {
		if !unicode.IsDigit(r) {
			return apperror.NewBadRequestError("NIF must contain only digits")
		}
	}
	return nil
}
