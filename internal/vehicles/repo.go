package vehicles

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/internal/repo"
	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Repository reads usage logs and the fuel expenses that pair with them.
// Ranges are inclusive on both calendar-date bounds.
type Repository interface {
	ListUsageLogs(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) ([]models.UsageLog, error)
	ListFuelExpenses(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Expense, error)
	ListMaintenance(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) ([]models.MaintenanceRecord, error)
	FindVehicle(ctx context.Context, userID, vehicleID uuid.UUID) (*models.Vehicle, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a vehicle metrics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ListUsageLogs(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) ([]models.UsageLog, error) {
	query := r.DB(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", from, to.AddDate(0, 0, 1))
	if vehicleID != nil {
		query = query.Where("vehicle_id = ?", *vehicleID)
	}

	var logs []models.UsageLog
	if err := query.Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *repository) ListFuelExpenses(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Where("category = ?", enums.ExpenseCategoryFuel).
		Where("date >= ? AND date < ?", from, to.AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repository) ListMaintenance(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) ([]models.MaintenanceRecord, error) {
	query := r.DB(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", from, to.AddDate(0, 0, 1))
	if vehicleID != nil {
		query = query.Where("vehicle_id = ?", *vehicleID)
	}

	var records []models.MaintenanceRecord
	if err := query.Order("date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindVehicle(ctx context.Context, userID, vehicleID uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.DB(ctx).
		Where("id = ? AND user_id = ?", vehicleID, userID).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}
