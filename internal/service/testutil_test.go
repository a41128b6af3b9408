package service

import (
	"testing"
	"time"

	"lakehouse-scheduler/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database shared and serial
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Reservation{}, &model.Duty{},
		&model.DutyAssignment{}, &model.Document{},
	))
	return db
}

func date(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format(model.DateLayout)
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()
	u, err := NewUserService(db).Create(t.Context(), model.CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter2!",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}
