package vehicles

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// ErrVehicleNotFound marks a vehicle filter that does not resolve to one
// of the caller's vehicles.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Converter changes an amount from one currency into another.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to enums.Currency) decimal.Decimal
}

// ServiceParams groups dependencies for the vehicle metrics service.
type ServiceParams struct {
	Repo      Repository
	Converter Converter
	Logger    *logger.Logger
}

// Service aggregates usage logs into distance, consumption, and running
// cost metrics. Ratios are nil when a denominator is missing rather than
// zero, so callers can tell "no data" apart from "zero reading".
type Service struct {
	repo      Repository
	converter Converter
	logg      *logger.Logger
}

// NewService builds a vehicle metrics service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Converter == nil {
		return nil, errors.New("currency converter is required")
	}
	return &Service{
		repo:      params.Repo,
		converter: params.Converter,
		logg:      params.Logger,
	}, nil
}

// Summary totals the period's usage logs. Distance sums across every log
// in range, including days without a fuel or energy reading, while each
// efficiency average divides by only its own recorded quantity.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) (*Summary, error) {
	if err := s.checkVehicle(ctx, userID, vehicleID); err != nil {
		return nil, err
	}
	logs, err := s.repo.ListUsageLogs(ctx, userID, from, to, vehicleID)
	if err != nil {
		return nil, err
	}

	totalDistance := decimal.Zero
	totalFuel := decimal.Zero
	totalEnergy := decimal.Zero
	withFuel := 0
	withEnergy := 0
	for _, log := range logs {
		totalDistance = totalDistance.Add(log.DistanceKm)
		if log.FuelLiters != nil {
			totalFuel = totalFuel.Add(*log.FuelLiters)
			withFuel++
		}
		if log.EnergyKwh != nil {
			totalEnergy = totalEnergy.Add(*log.EnergyKwh)
			withEnergy++
		}
	}

	summary := &Summary{
		TotalDistanceKm: totalDistance.Round(2),
		TotalFuelLiters: totalFuel.Round(2),
		TotalEnergyKwh:  totalEnergy.Round(2),
		LogCount:        len(logs),
		LogsWithFuel:    withFuel,
		LogsWithEnergy:  withEnergy,
	}
	if totalFuel.IsPositive() {
		avg := totalDistance.Div(totalFuel).Round(2)
		summary.AvgKmPerLiter = &avg
	}
	if totalEnergy.IsPositive() {
		avg := totalDistance.Div(totalEnergy).Round(2)
		summary.AvgKmPerKwh = &avg
	}
	return summary, nil
}

// DailyDistance group-sums distance per calendar day, ascending.
func (s *Service) DailyDistance(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) ([]DailyDistancePoint, error) {
	if err := s.checkVehicle(ctx, userID, vehicleID); err != nil {
		return nil, err
	}
	logs, err := s.repo.ListUsageLogs(ctx, userID, from, to, vehicleID)
	if err != nil {
		return nil, err
	}

	days := make(map[string]decimal.Decimal)
	for _, log := range logs {
		key := dayKey(log.Date)
		days[key] = days[key].Add(log.DistanceKm)
	}

	series := make([]DailyDistancePoint, 0, len(days))
	for key, distance := range days {
		series = append(series, DailyDistancePoint{Date: key, DistanceKm: distance.Round(2)})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

// DailyConsumption group-sums fuel and energy per calendar day. Both
// series come back in one pass; a day's fuel or energy is nil when no log
// recorded that quantity, which keeps combustion-only and electric-only
// fleets from reporting phantom zeros.
func (s *Service) DailyConsumption(ctx context.Context, userID uuid.UUID, from, to time.Time, vehicleID *uuid.UUID) ([]DailyConsumptionPoint, error) {
	if err := s.checkVehicle(ctx, userID, vehicleID); err != nil {
		return nil, err
	}
	logs, err := s.repo.ListUsageLogs(ctx, userID, from, to, vehicleID)
	if err != nil {
		return nil, err
	}

	type reading struct {
		fuel   *decimal.Decimal
		energy *decimal.Decimal
	}
	days := make(map[string]*reading)
	for _, log := range logs {
		key := dayKey(log.Date)
		r, ok := days[key]
		if !ok {
			r = &reading{}
			days[key] = r
		}
		if log.FuelLiters != nil {
			r.fuel = addOptional(r.fuel, *log.FuelLiters)
		}
		if log.EnergyKwh != nil {
			r.energy = addOptional(r.energy, *log.EnergyKwh)
		}
	}

	series := make([]DailyConsumptionPoint, 0, len(days))
	for key, r := range days {
		series = append(series, DailyConsumptionPoint{
			Date:       key,
			FuelLiters: roundOptional(r.fuel),
			EnergyKwh:  roundOptional(r.energy),
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

// CostPerKmReport joins fuel-category spending with distance driven,
// converted into the owner's currency. The ratio is nil unless the period
// has both positive spending and positive distance.
func (s *Service) CostPerKmReport(ctx context.Context, user *models.User, from, to time.Time, vehicleID *uuid.UUID) (*CostPerKm, error) {
	if err := s.checkVehicle(ctx, user.ID, vehicleID); err != nil {
		return nil, err
	}
	var (
		logs     []models.UsageLog
		expenses []models.Expense
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		logs, err = s.repo.ListUsageLogs(groupCtx, user.ID, from, to, vehicleID)
		return err
	})
	group.Go(func() error {
		var err error
		expenses, err = s.repo.ListFuelExpenses(groupCtx, user.ID, from, to)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	totalDistance := decimal.Zero
	for _, log := range logs {
		totalDistance = totalDistance.Add(log.DistanceKm)
	}

	totalCost := decimal.Zero
	for _, expense := range expenses {
		totalCost = totalCost.Add(s.converter.Convert(ctx, expense.Amount, expense.Currency, user.Currency))
	}

	report := &CostPerKm{
		TotalFuelCost:   totalCost.Round(2),
		TotalDistanceKm: totalDistance.Round(2),
		Currency:        user.Currency,
	}
	if totalCost.IsPositive() && totalDistance.IsPositive() {
		ratio := totalCost.Div(totalDistance).Round(2)
		report.CostPerKm = &ratio
	}
	return report, nil
}

// MaintenanceHistory lists the period's service records, oldest first,
// with the total converted into the owner's currency.
func (s *Service) MaintenanceHistory(ctx context.Context, user *models.User, from, to time.Time, vehicleID *uuid.UUID) (*MaintenanceHistory, error) {
	if err := s.checkVehicle(ctx, user.ID, vehicleID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListMaintenance(ctx, user.ID, from, to, vehicleID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	entries := make([]MaintenanceEntry, 0, len(records))
	for _, record := range records {
		total = total.Add(s.converter.Convert(ctx, record.Cost, record.Currency, user.Currency))
		entries = append(entries, MaintenanceEntry{
			ID:         record.ID.String(),
			VehicleID:  record.VehicleID.String(),
			Date:       dayKey(record.Date),
			Kind:       record.Kind,
			OdometerKm: record.OdometerKm,
			Cost:       record.Cost,
			Currency:   record.Currency,
			Note:       record.Note,
		})
	}

	return &MaintenanceHistory{
		Records:   entries,
		TotalCost: total.Round(2),
		Currency:  user.Currency,
	}, nil
}

// checkVehicle confirms a vehicle filter references one of the caller's
// own vehicles before aggregating with it.
func (s *Service) checkVehicle(ctx context.Context, userID uuid.UUID, vehicleID *uuid.UUID) error {
	if vehicleID == nil {
		return nil
	}
	if _, err := s.repo.FindVehicle(ctx, userID, *vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

func addOptional(current *decimal.Decimal, value decimal.Decimal) *decimal.Decimal {
	if current == nil {
		return &value
	}
	sum := current.Add(value)
	return &sum
}

func roundOptional(value *decimal.Decimal) *decimal.Decimal {
	if value == nil {
		return nil
	}
	rounded := value.Round(3)
	return &rounded
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}
