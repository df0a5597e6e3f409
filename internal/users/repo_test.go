package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  country TEXT NOT NULL DEFAULT 'BR',
  currency TEXT NOT NULL DEFAULT 'BRL',
  role TEXT NOT NULL DEFAULT 'driver',
  created_at DATETIME,
  updated_at DATETIME
);`).Error)

	return db
}

func TestFindByIDAndEmail(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	user := models.User{
		ID:       uuid.New(),
		Email:    "rider@example.com",
		Name:     "Rider",
		Country:  "PT",
		Currency: enums.CurrencyEUR,
		Role:     enums.UserRoleDriver,
	}
	require.NoError(t, db.Create(&user).Error)

	byID, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(context.Background(), "rider@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
