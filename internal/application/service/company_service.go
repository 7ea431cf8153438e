package service

import (
	"context"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

// CompanyService manages the business settings used on fiscal documents.
type CompanyService struct {
	companyRepo repository.CompanySettingsRepository
	audit       *AuditService
}

// NewCompanyService creates a new company settings service
func NewCompanyService(companyRepo repository.CompanySettingsRepository, audit *AuditService) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, audit: audit}
}

func (s *CompanyService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	return s.companyRepo.Get(ctx)
}

// UpdateSettingsInput represents a partial company settings update
type UpdateSettingsInput struct {
	CompanyName           *string
	TaxRegistrationNumber *string
	StreetName            *string
	BuildingNumber        *string
	City                  *string
	PostalCode            *string
	Telephone             *string
	Email                 *string
	Website               *string
	InvoiceSeries         *string
	CreditNoteSeries      *string
	ReceiptSeries         *string
}

// UpdateSettings updates the emitter identity and invoice series. The
// NIF is validated; series changes only affect future documents.
func (s *CompanyService) UpdateSettings(ctx context.Context, userID uuid.UUID, input *UpdateSettingsInput) (*entity.CompanySettings, error) {
	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.TaxRegistrationNumber != nil {
		if err := ValidateTaxID(*input.TaxRegistrationNumber); err != nil {
			return nil, err
		}
		settings.TaxRegistrationNumber = *input.TaxRegistrationNumber
	}
	if input.CompanyName != nil {
		if *input.CompanyName == "" {
			return nil, apperror.NewBadRequestError("Company name cannot be empty")
		}
		settings.CompanyName = *input.CompanyName
	}
	if input.StreetName != nil {
		settings.StreetName = *input.StreetName
	}
	if input.BuildingNumber != nil {
		settings.BuildingNumber = *input.BuildingNumber
	}
	if input.City != nil {
		settings.City = *input.City
	}
	if input.PostalCode != nil {
		settings.PostalCode = *input.PostalCode
	}
	if input.Telephone != nil {
		settings.Telephone = *input.Telephone
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.Website != nil {
		settings.Website = *input.Website
	}
	if input.InvoiceSeries != nil && *input.InvoiceSeries != "" {
		settings.InvoiceSeries = *input.InvoiceSeries
	}
	if input.CreditNoteSeries != nil && *input.CreditNoteSeries != "" {
		settings.CreditNoteSeries = *input.CreditNoteSeries
	}
	if input.ReceiptSeries != nil && *input.ReceiptSeries != "" {
		settings.ReceiptSeries = *input.ReceiptSeries
	}

	if err := s.companyRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "CompanySettings", settings.ID.String(),
		settings.CompanyName, "")
	return settings, nil
}
