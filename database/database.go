package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase opens the configured database. It is the fx provider for *gorm.DB.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.Database)
}

func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.SQLitePath))
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(zerologWriter{}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Driver).Msg("Failed to connect to database")
		return nil, err
	}

	log.Info().Str("driver", cfg.Driver).Msg("Database connection established")
	return db, nil
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// sqliteDSN turns on foreign keys for every pooled connection; SQLite leaves them off by default.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}
