package vehicles

import (
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/enums"
)

// Summary aggregates usage logs for the period. The efficiency averages
// are nil whenever their denominator is zero; they are never NaN or Inf.
type Summary struct {
	TotalDistanceKm decimal.Decimal  `json:"total_distance_km"`
	TotalFuelLiters decimal.Decimal  `json:"total_fuel_liters"`
	TotalEnergyKwh  decimal.Decimal  `json:"total_energy_kwh"`
	LogCount        int              `json:"log_count"`
	LogsWithFuel    int              `json:"logs_with_fuel"`
	LogsWithEnergy  int              `json:"logs_with_energy"`
	AvgKmPerLiter   *decimal.Decimal `json:"avg_km_per_liter"`
	AvgKmPerKwh     *decimal.Decimal `json:"avg_km_per_kwh"`
}

// DailyDistancePoint is one calendar day of driving.
type DailyDistancePoint struct {
	Date       string          `json:"date"`
	DistanceKm decimal.Decimal `json:"distance_km"`
}

// DailyConsumptionPoint carries both fuel and energy for a day; either side
// is nil when no log of that kind exists for the day, so mixed fleets get
// both series in one pass.
type DailyConsumptionPoint struct {
	Date       string           `json:"date"`
	FuelLiters *decimal.Decimal `json:"fuel_liters"`
	EnergyKwh  *decimal.Decimal `json:"energy_kwh"`
}

// MaintenanceEntry is one service-history row. Cost stays in the currency
// it was recorded in; only the history total is converted.
type MaintenanceEntry struct {
	ID         string          `json:"id"`
	VehicleID  string          `json:"vehicle_id"`
	Date       string          `json:"date"`
	Kind       string          `json:"kind"`
	OdometerKm *int            `json:"odometer_km"`
	Cost       decimal.Decimal `json:"cost"`
	Currency   enums.Currency  `json:"currency"`
	Note       *string         `json:"note"`
}

// MaintenanceHistory lists the period's service records with a total in
// the owner's currency.
type MaintenanceHistory struct {
	Records   []MaintenanceEntry `json:"records"`
	TotalCost decimal.Decimal    `json:"total_cost"`
	Currency  enums.Currency     `json:"currency"`
}

// CostPerKm relates fuel spending to distance driven over the period.
// The ratio is nil unless both sides are positive.
type CostPerKm struct {
	CostPerKm       *decimal.Decimal `json:"cost_per_km"`
	TotalFuelCost   decimal.Decimal  `json:"total_fuel_cost"`
	TotalDistanceKm decimal.Decimal  `json:"total_distance_km"`
	Currency        enums.Currency   `json:"currency"`
}
