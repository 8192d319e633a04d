package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/auth"
	adminctrl "github.com/lshigami/mybeing/internal/controller/admin"
	userctrl "github.com/lshigami/mybeing/internal/controller/user"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/middleware"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Handlers is everything RegisterRoutes mounts.
type Handlers struct {
	fx.In

	Auth          *adminctrl.AuthController
	AdminQuizzes  *adminctrl.QuizController
	AdminArticles *adminctrl.ArticleController
	Analytics     *adminctrl.AnalyticsController
	Quizzes       *userctrl.QuizController
	Newsletter    *userctrl.NewsletterController
	Articles      *userctrl.ArticleController

	Authenticator *auth.Authenticator
	Limiters      *ratelimit.Limiters
	Backend       *RateLimitBackend
	DB            *gorm.DB
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	l := h.Limiters

	router.GET("/healthz", health(h.DB, h.Backend))

	// User Routes (prefixed with /api/v1)
	api := router.Group("/api/v1")
	{
		api.GET("/quizzes", h.Quizzes.ListQuizzes)
		api.GET("/quizzes/:slug", h.Quizzes.GetQuiz)
		api.POST("/quizzes/:slug/submit", middleware.RateLimit(l.API, middleware.ByIP), h.Quizzes.SubmitQuiz)
		api.POST("/quizzes/:slug/runs/:run_id/email", middleware.RateLimit(l.QuizEmail, middleware.ByIP), h.Quizzes.AttachEmail)

		newsletter := api.Group("/newsletter", middleware.RateLimit(l.Newsletter, middleware.ByIPAndUserAgent))
		newsletter.POST("/subscribe", h.Newsletter.Subscribe)
		newsletter.POST("/unsubscribe", h.Newsletter.Unsubscribe)

		api.GET("/articles", h.Articles.ListArticles)
		api.GET("/articles/:slug", h.Articles.GetArticle)
	}

	// Admin Routes (prefixed with /api/v1/admin)
	admin := router.Group("/api/v1/admin", middleware.NoStore())
	{
		admin.POST("/login", middleware.RateLimit(l.AdminLogin, middleware.ByIP), h.Auth.Login)
		admin.POST("/logout", h.Auth.Logout)

		secured := admin.Group("", middleware.RequireAdmin(h.Authenticator))
		secured.GET("/me", h.Auth.Me)

		secured.GET("/quizzes", h.AdminQuizzes.ListQuizzes)
		secured.POST("/quizzes", h.AdminQuizzes.CreateQuiz)
		secured.PUT("/quizzes/:slug", h.AdminQuizzes.UpdateQuiz)
		secured.DELETE("/quizzes/:slug", h.AdminQuizzes.DeleteQuiz)
		secured.GET("/quizzes/:slug/band-check", h.AdminQuizzes.CheckBands)

		secured.GET("/articles", h.AdminArticles.ListArticles)
		secured.POST("/articles", h.AdminArticles.CreateArticle)
		secured.PUT("/articles/:slug", h.AdminArticles.UpdateArticle)
		secured.DELETE("/articles/:slug", h.AdminArticles.DeleteArticle)

		secured.GET("/analytics", h.Analytics.Summary)
	}
}

func health(db *gorm.DB, b *RateLimitBackend) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp := dto.HealthResponse{Status: "ok", Database: "ok", Limiter: b.Kind}
		status := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			resp.Status, resp.Database = "degraded", "unreachable"
			status = http.StatusServiceUnavailable
		}
		if err := b.Ping(ctx); err != nil {
			// Limiters fall back to local counters, so Redis alone does not fail the check.
			resp.Limiter = b.Kind + " (unreachable)"
		}
		c.JSON(status, resp)
	}
}
