package plans

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
)

func setupPlansTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS plans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  price_monthly NUMERIC NOT NULL,
  max_vehicles INTEGER,
  max_platforms INTEGER,
  features TEXT,
  is_default BOOLEAN NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)

	return db
}

func TestEnsureCreatesThenUpdates(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)

	two := 2
	plan := models.Plan{
		Name:         "Pro",
		PriceMonthly: decimal.RequireFromString("9.90"),
		MaxVehicles:  &two,
	}
	require.NoError(t, repo.Ensure(context.Background(), plan))

	plan.PriceMonthly = decimal.RequireFromString("12.90")
	require.NoError(t, repo.Ensure(context.Background(), plan))

	var count int64
	require.NoError(t, db.Model(&models.Plan{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.Plan
	require.NoError(t, db.Where("name = ?", "Pro").First(&stored).Error)
	assert.True(t, stored.PriceMonthly.Equal(decimal.RequireFromString("12.90")))
}

func TestFindDefaultMissingIsNotAnError(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)

	plan, err := repo.FindDefault(context.Background())
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestFindDefaultReturnsTheDefaultTier(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)

	for _, plan := range []models.Plan{
		{ID: uuid.New(), Name: "Free", PriceMonthly: decimal.Zero, IsDefault: true},
		{ID: uuid.New(), Name: "Pro", PriceMonthly: decimal.RequireFromString("9.90")},
	} {
		require.NoError(t, db.Create(&plan).Error)
	}

	plan, err := repo.FindDefault(context.Background())
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "Free", plan.Name)
}

func TestListOrdersByPriceAscending(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)

	for _, plan := range []models.Plan{
		{ID: uuid.New(), Name: "Pro", PriceMonthly: decimal.RequireFromString("9.90")},
		{ID: uuid.New(), Name: "Free", PriceMonthly: decimal.Zero, IsDefault: true},
	} {
		require.NoError(t, db.Create(&plan).Error)
	}

	tiers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Free", tiers[0].Name)
	assert.Equal(t, "Pro", tiers[1].Name)
}
