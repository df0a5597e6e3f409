package plans

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/internal/repo"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
)

// Repository manages subscription plan persistence.
type Repository interface {
	Ensure(ctx context.Context, plan models.Plan) error
	FindDefault(ctx context.Context) (*models.Plan, error)
	List(ctx context.Context) ([]models.Plan, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a plans repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// Ensure creates the plan if absent or refreshes its price, limits, and
// flags if present. The plan name is the upsert key, so boot-time seeding
// can run repeatedly without duplicating tiers.
func (r *repository) Ensure(ctx context.Context, plan models.Plan) error {
	var existing models.Plan
	err := r.DB(ctx).Where("name = ?", plan.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if plan.ID == uuid.Nil {
			plan.ID = uuid.New()
		}
		return r.DB(ctx).Create(&plan).Error
	}
	if err != nil {
		return err
	}

	return r.DB(ctx).
		Model(&existing).
		Updates(map[string]any{
			"price_monthly": plan.PriceMonthly,
			"max_vehicles":  plan.MaxVehicles,
			"max_platforms": plan.MaxPlatforms,
			"features":      plan.Features,
			"is_default":    plan.IsDefault,
		}).Error
}

func (r *repository) FindDefault(ctx context.Context) (*models.Plan, error) {
	var plan models.Plan
	err := r.DB(ctx).Where("is_default = ?", true).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repository) List(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.DB(ctx).Order("price_monthly ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
