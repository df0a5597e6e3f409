package adminkpi

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/internal/repo"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Repository reads the cross-tenant slices the admin dashboard aggregates.
// Time windows are half-open: from inclusive, to exclusive.
type Repository interface {
	ListPaidPayments(ctx context.Context, from, to time.Time) ([]models.Payment, error)
	ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountOverdueSubscriptions(ctx context.Context) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an admin KPI repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ListPaidPayments(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.DB(ctx).
		Where("status = ?", enums.PaymentStatusPaid).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Order("payment_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.DB(ctx).
		Preload("Plan").
		Preload("User").
		Where("status = ?", enums.SubscriptionStatusActive).
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *repository) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *repository) CountOverdueSubscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Subscription{}).
		Where("status = ?", enums.SubscriptionStatusOverdue).
		Count(&count).Error
	return count, err
}
