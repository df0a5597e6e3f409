package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/internal/repo"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Repository manages subscription lifecycle persistence.
type Repository interface {
	ListActiveExpired(ctx context.Context, asOf time.Time, limit int) ([]models.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SubscriptionStatus) error
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a subscriptions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// ListActiveExpired returns active subscriptions whose billing period
// ended on or before asOf. Rows with no end date are open-ended and never
// expire.
func (r *repository) ListActiveExpired(ctx context.Context, asOf time.Time, limit int) ([]models.Subscription, error) {
	query := r.DB(ctx).
		Preload("Plan").
		Where("status = ?", enums.SubscriptionStatusActive).
		Where("end_date IS NOT NULL AND end_date <= ?", asOf).
		Order("end_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var subscriptions []models.Subscription
	if err := query.Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SubscriptionStatus) error {
	return r.DB(ctx).
		Model(&models.Subscription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.DB(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Where("status IN ?", []enums.SubscriptionStatus{enums.SubscriptionStatusTrial, enums.SubscriptionStatusActive}).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}
