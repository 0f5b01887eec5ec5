package controller

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
)

// setupTestDB points the global handle at a throwaway sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ridepool.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Route{},
		&model.RouteRequest{},
		&model.Subscription{},
	)
	if err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}
