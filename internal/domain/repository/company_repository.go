package repository

import (
	"context"

	"github.com/dcruzdev/restopos/internal/domain/entity"
)

// CompanySettingsRepository defines the interface for the company settings singleton
type CompanySettingsRepository interface {
	// Get returns the single settings row, creating defaults when missing.
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Update(ctx context.Context, settings *entity.CompanySettings) error
}
