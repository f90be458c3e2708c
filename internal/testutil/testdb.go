// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"movies-api/config"
	"movies-api/database"
	"movies-api/internal/domain/movies"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database that lives for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Seed inserts movies as given, ids included.
func Seed(t *testing.T, db *gorm.DB, ms ...movies.Movie) {
	t.Helper()
	for i := range ms {
		require.NoError(t, db.Create(&ms[i]).Error)
	}
}

func Float(f float64) *float64 { return &f }

func Int(n int64) *int64 { return &n }

func Bool(b bool) *bool { return &b }

func Str(s string) *string { return &s }

func Status(s movies.Status) *movies.Status { return &s }
