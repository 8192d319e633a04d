// Package dbtest opens isolated, migrated in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/database"
	"gorm.io/gorm"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Open(config.Database{Driver: "sqlite", SQLitePath: dsn})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
