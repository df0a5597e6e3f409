package vehicles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

type stubRepo struct {
	logs        []models.UsageLog
	expenses    []models.Expense
	maintenance []models.MaintenanceRecord
	vehicles    []models.Vehicle
}

func (s *stubRepo) ListUsageLogs(context.Context, uuid.UUID, time.Time, time.Time, *uuid.UUID) ([]models.UsageLog, error) {
	return s.logs, nil
}

func (s *stubRepo) ListFuelExpenses(context.Context, uuid.UUID, time.Time, time.Time) ([]models.Expense, error) {
	return s.expenses, nil
}

func (s *stubRepo) ListMaintenance(context.Context, uuid.UUID, time.Time, time.Time, *uuid.UUID) ([]models.MaintenanceRecord, error) {
	return s.maintenance, nil
}

func (s *stubRepo) FindVehicle(_ context.Context, userID, vehicleID uuid.UUID) (*models.Vehicle, error) {
	for _, vehicle := range s.vehicles {
		if vehicle.ID == vehicleID && vehicle.UserID == userID {
			return &vehicle, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type passthroughConverter struct{}

func (passthroughConverter) Convert(_ context.Context, amount decimal.Decimal, from, to enums.Currency) decimal.Decimal {
	if from == enums.CurrencyUSD && to == enums.CurrencyEUR {
		return amount.Mul(decimal.RequireFromString("0.92"))
	}
	return amount
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Converter: passthroughConverter{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestSummaryAveragesIncludeZeroFuelDistance(t *testing.T) {
	repo := &stubRepo{logs: []models.UsageLog{
		{Date: day("2026-03-01"), DistanceKm: dec("100"), FuelLiters: decPtr("10")},
		{Date: day("2026-03-02"), DistanceKm: dec("50")},
	}}
	svc := newTestService(t, repo)

	summary, err := svc.Summary(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	// 150 km over 10 L: the second log has no fuel reading but its
	// distance still counts toward the numerator.
	if !summary.TotalDistanceKm.Equal(dec("150")) {
		t.Fatalf("total distance = %s, want 150", summary.TotalDistanceKm)
	}
	if summary.AvgKmPerLiter == nil || !summary.AvgKmPerLiter.Equal(dec("15")) {
		t.Fatalf("avg km/L = %v, want 15", summary.AvgKmPerLiter)
	}
	if summary.AvgKmPerKwh != nil {
		t.Fatalf("avg km/kWh should be nil with no energy readings")
	}
	if summary.LogCount != 2 || summary.LogsWithFuel != 1 || summary.LogsWithEnergy != 0 {
		t.Fatalf("counts = %d/%d/%d, want 2 logs, 1 with fuel, 0 with energy",
			summary.LogCount, summary.LogsWithFuel, summary.LogsWithEnergy)
	}
}

func TestSummaryNilAveragesWithoutReadings(t *testing.T) {
	repo := &stubRepo{logs: []models.UsageLog{
		{Date: day("2026-03-01"), DistanceKm: dec("42")},
	}}
	svc := newTestService(t, repo)

	summary, err := svc.Summary(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.AvgKmPerLiter != nil || summary.AvgKmPerKwh != nil {
		t.Fatalf("averages must be nil when no fuel or energy was recorded")
	}
	if summary.LogCount != 1 {
		t.Fatalf("log count = %d, want 1", summary.LogCount)
	}
	if summary.LogsWithFuel != 0 || summary.LogsWithEnergy != 0 {
		t.Fatalf("reading counts = %d/%d, want 0/0", summary.LogsWithFuel, summary.LogsWithEnergy)
	}
}

func TestSummaryCountsMixedReadings(t *testing.T) {
	repo := &stubRepo{logs: []models.UsageLog{
		{Date: day("2026-03-01"), DistanceKm: dec("80"), FuelLiters: decPtr("6")},
		{Date: day("2026-03-02"), DistanceKm: dec("40"), EnergyKwh: decPtr("12")},
		{Date: day("2026-03-03"), DistanceKm: dec("60"), FuelLiters: decPtr("4"), EnergyKwh: decPtr("3")},
	}}
	svc := newTestService(t, repo)

	summary, err := svc.Summary(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.LogCount != 3 || summary.LogsWithFuel != 2 || summary.LogsWithEnergy != 2 {
		t.Fatalf("counts = %d/%d/%d, want 3 logs, 2 with fuel, 2 with energy",
			summary.LogCount, summary.LogsWithFuel, summary.LogsWithEnergy)
	}
}

func TestSummaryRejectsForeignVehicle(t *testing.T) {
	owner := uuid.New()
	repo := &stubRepo{vehicles: []models.Vehicle{
		{ID: uuid.New(), UserID: owner, Name: "car"},
	}}
	svc := newTestService(t, repo)

	foreign := uuid.New()
	_, err := svc.Summary(context.Background(), owner, day("2026-03-01"), day("2026-03-31"), &foreign)
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}

	// Another caller filtering by someone else's vehicle gets the same
	// answer as a vehicle that does not exist.
	_, err = svc.DailyDistance(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"), &repo.vehicles[0].ID)
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound for foreign owner, got %v", err)
	}
}

func TestDailyDistanceGroupsByDay(t *testing.T) {
	repo := &stubRepo{logs: []models.UsageLog{
		{Date: day("2026-03-02"), DistanceKm: dec("20")},
		{Date: day("2026-03-01"), DistanceKm: dec("10")},
		{Date: day("2026-03-02"), DistanceKm: dec("5")},
	}}
	svc := newTestService(t, repo)

	series, err := svc.DailyDistance(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"), nil)
	if err != nil {
		t.Fatalf("daily distance: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	if series[0].Date != "2026-03-01" || !series[0].DistanceKm.Equal(dec("10")) {
		t.Fatalf("first day = %s/%s", series[0].Date, series[0].DistanceKm)
	}
	if !series[1].DistanceKm.Equal(dec("25")) {
		t.Fatalf("2026-03-02 distance = %s, want 25", series[1].DistanceKm)
	}
}

func TestDailyConsumptionCarriesBothSeries(t *testing.T) {
	repo := &stubRepo{logs: []models.UsageLog{
		{Date: day("2026-03-01"), DistanceKm: dec("80"), FuelLiters: decPtr("6")},
		{Date: day("2026-03-01"), DistanceKm: dec("40"), EnergyKwh: decPtr("12")},
		{Date: day("2026-03-02"), DistanceKm: dec("30")},
	}}
	svc := newTestService(t, repo)

	series, err := svc.DailyConsumption(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"), nil)
	if err != nil {
		t.Fatalf("daily consumption: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	first := series[0]
	if first.FuelLiters == nil || !first.FuelLiters.Equal(dec("6")) {
		t.Fatalf("day 1 fuel = %v, want 6", first.FuelLiters)
	}
	if first.EnergyKwh == nil || !first.EnergyKwh.Equal(dec("12")) {
		t.Fatalf("day 1 energy = %v, want 12", first.EnergyKwh)
	}
	second := series[1]
	if second.FuelLiters != nil || second.EnergyKwh != nil {
		t.Fatalf("day without readings must carry nil fuel and energy")
	}
}

func TestCostPerKmNullSafety(t *testing.T) {
	user := &models.User{ID: uuid.New(), Currency: enums.CurrencyEUR}

	t.Run("no distance", func(t *testing.T) {
		repo := &stubRepo{expenses: []models.Expense{
			{Amount: dec("50"), Currency: enums.CurrencyEUR, Category: enums.ExpenseCategoryFuel, Date: day("2026-03-01")},
		}}
		svc := newTestService(t, repo)

		report, err := svc.CostPerKmReport(context.Background(), user, day("2026-03-01"), day("2026-03-31"), nil)
		if err != nil {
			t.Fatalf("cost per km: %v", err)
		}
		if report.CostPerKm != nil {
			t.Fatalf("ratio must be nil with zero distance, got %s", report.CostPerKm)
		}
		if !report.TotalFuelCost.Equal(dec("50")) {
			t.Fatalf("fuel cost = %s, want 50", report.TotalFuelCost)
		}
	})

	t.Run("no spending", func(t *testing.T) {
		repo := &stubRepo{logs: []models.UsageLog{
			{Date: day("2026-03-01"), DistanceKm: dec("120")},
		}}
		svc := newTestService(t, repo)

		report, err := svc.CostPerKmReport(context.Background(), user, day("2026-03-01"), day("2026-03-31"), nil)
		if err != nil {
			t.Fatalf("cost per km: %v", err)
		}
		if report.CostPerKm != nil {
			t.Fatalf("ratio must be nil with zero spending, got %s", report.CostPerKm)
		}
	})
}

func TestCostPerKmConvertsIntoOwnerCurrency(t *testing.T) {
	user := &models.User{ID: uuid.New(), Currency: enums.CurrencyEUR}
	repo := &stubRepo{
		logs: []models.UsageLog{
			{Date: day("2026-03-01"), DistanceKm: dec("100")},
		},
		expenses: []models.Expense{
			{Amount: dec("100"), Currency: enums.CurrencyUSD, Category: enums.ExpenseCategoryFuel, Date: day("2026-03-02")},
		},
	}
	svc := newTestService(t, repo)

	report, err := svc.CostPerKmReport(context.Background(), user, day("2026-03-01"), day("2026-03-31"), nil)
	if err != nil {
		t.Fatalf("cost per km: %v", err)
	}
	if !report.TotalFuelCost.Equal(dec("92")) {
		t.Fatalf("fuel cost = %s, want 92", report.TotalFuelCost)
	}
	if report.CostPerKm == nil || !report.CostPerKm.Equal(dec("0.92")) {
		t.Fatalf("cost per km = %v, want 0.92", report.CostPerKm)
	}
}

func TestMaintenanceHistoryTotalsInOwnerCurrency(t *testing.T) {
	user := &models.User{ID: uuid.New(), Currency: enums.CurrencyEUR}
	vehicleID := uuid.New()
	repo := &stubRepo{
		vehicles: []models.Vehicle{{ID: vehicleID, UserID: user.ID, Name: "car"}},
		maintenance: []models.MaintenanceRecord{
			{ID: uuid.New(), VehicleID: vehicleID, Date: day("2026-03-03"), Kind: "oil_change", Cost: dec("50"), Currency: enums.CurrencyEUR},
			{ID: uuid.New(), VehicleID: vehicleID, Date: day("2026-03-20"), Kind: "tires", Cost: dec("100"), Currency: enums.CurrencyUSD},
		},
	}
	svc := newTestService(t, repo)

	history, err := svc.MaintenanceHistory(context.Background(), user, day("2026-03-01"), day("2026-03-31"), &vehicleID)
	if err != nil {
		t.Fatalf("maintenance history: %v", err)
	}

	if len(history.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history.Records))
	}
	// 50 EUR plus 100 USD at 0.92.
	if !history.TotalCost.Equal(dec("142")) {
		t.Fatalf("total cost = %s, want 142", history.TotalCost)
	}
	if history.Records[0].Kind != "oil_change" || history.Records[0].Date != "2026-03-03" {
		t.Fatalf("unexpected first record %+v", history.Records[0])
	}
	if !history.Records[1].Cost.Equal(dec("100")) || history.Records[1].Currency != enums.CurrencyUSD {
		t.Fatalf("record cost should keep its recorded currency")
	}
}
