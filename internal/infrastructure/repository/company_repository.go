package repository

import (
	"context"
	"errors"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type companySettingsRepository struct {
	db *gorm.DB
}

// NewCompanySettingsRepository creates a new company settings repository
func NewCompanySettingsRepository(db *gorm.DB) domainRepo.CompanySettingsRepository {
	return &companySettingsRepository{db: db}
}

func (r *companySettingsRepository) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var settings entity.CompanySettings
	err := dbFrom(ctx, r.db).WithContext(ctx).Order("created_at").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.CompanySettings{
			CompanyName:   "Unconfigured",
			InvoiceSeries: "FT A",
		}
		if err := dbFrom(ctx, r.db).WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	return &settings, err
}

func (r *companySettingsRepository) Update(ctx context.Context, settings *entity.CompanySettings) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(settings).Error
}
