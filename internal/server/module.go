// Package server wires the HTTP API together with fx.
package server

import (
	"context"

	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/database"
	"github.com/lshigami/mybeing/internal/auth"
	adminctrl "github.com/lshigami/mybeing/internal/controller/admin"
	userctrl "github.com/lshigami/mybeing/internal/controller/user"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/lshigami/mybeing/internal/seed"
	"github.com/lshigami/mybeing/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Core provides everything below the HTTP layer: database, repositories, services and auth.
var Core = fx.Options(
	fx.Provide(
		database.NewDatabase,
		auth.NewFromConfig,
	),

	// Repositories Layer
	fx.Provide(
		repository.NewQuizRepository,
		repository.NewQuizRunRepository,
		repository.NewSubscriberRepository,
		repository.NewArticleRepository,
	),

	// Services Layer
	fx.Provide(
		service.NewQuizService,
		service.NewAdminQuizService,
		service.NewNewsletterService,
		service.NewArticleService,
		service.NewAnalyticsService,
	),
)

// HTTP provides the gin engine, limiters, controllers and the server itself.
var HTTP = fx.Options(
	fx.Provide(
		NewRateLimitBackend,
		NewLimiters,
		NewBurstGuard,
		NewScheduler,
		NewGinEngine,
	),

	// API Controllers Layer
	fx.Provide(
		adminctrl.NewAuthController,
		adminctrl.NewQuizController,
		adminctrl.NewArticleController,
		adminctrl.NewAnalyticsController,
		userctrl.NewQuizController,
		userctrl.NewNewsletterController,
		userctrl.NewArticleController,
	),

	fx.Invoke(MigrateAndSeed),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(StartServer),
)

// MigrateAndSeed runs migrations and, when enabled, loads the built-in quiz catalog.
func MigrateAndSeed(db *gorm.DB, cfg *config.Config, quizzes service.AdminQuizService, a *auth.Authenticator) error {
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if !a.Configured() {
		log.Warn().Msg("OWNER_EMAIL, ADMIN_PASSWORD or JWT_SECRET missing: admin routes will answer 503")
	}
	if !cfg.SeedOnStart {
		return nil
	}
	_, err := seed.Run(context.Background(), quizzes)
	return err
}
