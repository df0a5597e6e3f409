package adminkpi

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

func setupAdminTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	for _, schema := range []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  country TEXT NOT NULL DEFAULT 'BR',
  currency TEXT NOT NULL DEFAULT 'BRL',
  role TEXT NOT NULL DEFAULT 'driver',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS plans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  price_monthly NUMERIC NOT NULL,
  max_vehicles INTEGER,
  max_platforms INTEGER,
  features TEXT,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  plan_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'trial',
  start_date DATETIME NOT NULL,
  end_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  currency TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(schema).Error)
	}

	return db
}

func TestListPaidPaymentsFiltersStatusAndWindow(t *testing.T) {
	db := setupAdminTestDB(t)
	repo := NewRepository(db)

	at := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return parsed
	}

	for _, payment := range []models.Payment{
		{ID: uuid.New(), UserID: uuid.New(), Amount: decimal.NewFromInt(10), Currency: enums.CurrencyEUR, Status: enums.PaymentStatusPaid, PaymentDate: at("2026-06-05")},
		{ID: uuid.New(), UserID: uuid.New(), Amount: decimal.NewFromInt(20), Currency: enums.CurrencyEUR, Status: enums.PaymentStatusFailed, PaymentDate: at("2026-06-06")},
		{ID: uuid.New(), UserID: uuid.New(), Amount: decimal.NewFromInt(30), Currency: enums.CurrencyEUR, Status: enums.PaymentStatusPaid, PaymentDate: at("2026-07-01")},
	} {
		require.NoError(t, db.Create(&payment).Error)
	}

	payments, err := repo.ListPaidPayments(context.Background(), at("2026-06-01"), at("2026-07-01"))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestListActiveSubscriptionsPreloadsPlanAndUser(t *testing.T) {
	db := setupAdminTestDB(t)
	repo := NewRepository(db)

	user := models.User{ID: uuid.New(), Email: "driver@example.com", Name: "Driver", Currency: enums.CurrencyBRL, Role: enums.UserRoleDriver}
	require.NoError(t, db.Create(&user).Error)
	plan := models.Plan{ID: uuid.New(), Name: "Pro", PriceMonthly: decimal.RequireFromString("29.90")}
	require.NoError(t, db.Create(&plan).Error)

	for _, sub := range []models.Subscription{
		{ID: uuid.New(), UserID: user.ID, PlanID: plan.ID, Status: enums.SubscriptionStatusActive, StartDate: time.Now()},
		{ID: uuid.New(), UserID: user.ID, PlanID: plan.ID, Status: enums.SubscriptionStatusCanceled, StartDate: time.Now()},
	} {
		require.NoError(t, db.Create(&sub).Error)
	}

	subs, err := repo.ListActiveSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.NotNil(t, subs[0].Plan)
	require.NotNil(t, subs[0].User)
	assert.Equal(t, "Pro", subs[0].Plan.Name)
	assert.Equal(t, enums.CurrencyBRL, subs[0].User.Currency)
}

func TestUserCounts(t *testing.T) {
	db := setupAdminTestDB(t)
	repo := NewRepository(db)

	at := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return parsed
	}

	for i, created := range []time.Time{at("2026-05-10"), at("2026-06-02"), at("2026-06-20")} {
		user := models.User{
			ID:        uuid.New(),
			Email:     string(rune('a'+i)) + "@example.com",
			Name:      "Driver",
			CreatedAt: created,
		}
		require.NoError(t, db.Create(&user).Error)
	}

	total, err := repo.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	june, err := repo.CountUsersCreatedBetween(context.Background(), at("2026-06-01"), at("2026-07-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), june)
}
