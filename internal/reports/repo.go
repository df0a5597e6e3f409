package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/internal/repo"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Repository reads the ledger slices that reports aggregate over. All
// queries are scoped to a single user; the date range is inclusive on both
// ends.
type Repository interface {
	ListIncomes(ctx context.Context, userID uuid.UUID, from, to time.Time, platformID *uuid.UUID) ([]models.Income, error)
	ListExpenses(ctx context.Context, userID uuid.UUID, from, to time.Time, category *enums.ExpenseCategory) ([]models.Expense, error)
	ListPlatforms(ctx context.Context, userID uuid.UUID) ([]models.Platform, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ListIncomes(ctx context.Context, userID uuid.UUID, from, to time.Time, platformID *uuid.UUID) ([]models.Income, error) {
	query := r.DB(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", from, endExclusive(to))
	if platformID != nil {
		query = query.Where("platform_id = ?", *platformID)
	}

	var incomes []models.Income
	if err := query.Order("date ASC").Find(&incomes).Error; err != nil {
		return nil, err
	}
	return incomes, nil
}

func (r *repository) ListExpenses(ctx context.Context, userID uuid.UUID, from, to time.Time, category *enums.ExpenseCategory) ([]models.Expense, error) {
	query := r.DB(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", from, endExclusive(to))
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var expenses []models.Expense
	if err := query.Order("date ASC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repository) ListPlatforms(ctx context.Context, userID uuid.UUID) ([]models.Platform, error) {
	var platforms []models.Platform
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&platforms).Error
	if err != nil {
		return nil, err
	}
	return platforms, nil
}

// endExclusive turns the inclusive end date into an exclusive bound so
// entries dated on the final day are counted regardless of the time zone
// the date column was stored with.
func endExclusive(to time.Time) time.Time {
	return to.AddDate(0, 0, 1)
}
