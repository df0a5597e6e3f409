package tax

import (
	"context"
	"errors"
	"strings"

	"github.com/girotrack/girotrack-backend/internal/repo"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository manages persistence for tax rules.
type Repository interface {
	FindActiveByCountry(ctx context.Context, country string) (*models.TaxRule, error)
	Ensure(ctx context.Context, country string, percentage decimal.Decimal) error
}

type repository struct {
	repo.Base
}

// NewRepository returns a tax rule repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) FindActiveByCountry(ctx context.Context, country string) (*models.TaxRule, error) {
	var rule models.TaxRule
	err := r.DB(ctx).
		Where("country = ? AND is_active = ?", normalizeCountry(country), true).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// Ensure creates the rule for the country if absent, or updates the
// percentage and reactivates it if present. The country code is the
// upsert key.
func (r *repository) Ensure(ctx context.Context, country string, percentage decimal.Decimal) error {
	normalized := normalizeCountry(country)

	var existing models.TaxRule
	err := r.DB(ctx).Where("country = ?", normalized).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rule := models.TaxRule{
			ID:         uuid.New(),
			Country:    normalized,
			Percentage: percentage,
			IsActive:   true,
		}
		return r.DB(ctx).Create(&rule).Error
	}
	if err != nil {
		return err
	}

	return r.DB(ctx).
		Model(&existing).
		Updates(map[string]any{"percentage": percentage, "is_active": true}).Error
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}
