package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/middleware"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

func NewBurstGuard(cfg *config.Config) *middleware.BurstGuard {
	return middleware.NewBurstGuard(cfg.RateLimit.BurstRPS, cfg.RateLimit.BurstSize)
}

func NewGinEngine(cfg *config.Config, guard *middleware.BurstGuard) (*gin.Engine, error) {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	// With no trusted proxies ClientIP is the socket address and X-Forwarded-For is ignored.
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)))
	r.Use(middleware.SecureHeaders())
	r.Use(guard.Middleware())

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r, nil
}

// corsConfig allows credentials only for an explicit origin list; browsers reject
// credentialed responses with a wildcard origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Retry-After", "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewScheduler runs the periodic sweeps of process-local limiter state.
func NewScheduler(lc fx.Lifecycle, b *RateLimitBackend, guard *middleware.BurstGuard) (*cron.Cron, error) {
	c := cron.New()
	if _, err := ratelimit.ScheduleSweep(c, b.Local, ratelimit.DefaultSweepSpec); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc("@every 30m", func() {
		if n := guard.Cleanup(time.Now()); n > 0 {
			log.Debug().Int("removed", n).Msg("burst guard cleanup")
		}
	}); err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return c, nil
}

// StartServer manages the HTTP server lifecycle.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, _ *cron.Cron) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("MyBeing API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
