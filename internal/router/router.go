// internal/router/router.go
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/config"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/database"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/handlers"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/middleware"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

const Version = "1.0.0"

// Initialize builds the gin engine. The rate limiter is returned so the
// caller can run its cleanup loop for the lifetime of the server.
func Initialize(db *gorm.DB, cfg *config.Config, svc *Services) (*gin.Engine, *middleware.RateLimiter) {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Scan, svc.Products, svc.Scoring, cfg.Scoring.SimilarLimit)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, Version)

	limiter := middleware.NewRateLimiterFromConfig(cfg.RateLimit)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(limiter.Middleware())
	{
		v1.GET("/db/ping", healthHandler.PingDatabase)

		products := v1.Group("/products")
		{
			products.GET("/:code", productHandler.GetProduct)
			products.GET("/:code/score", productHandler.GetStoredScore)
			products.POST("/:code/score", productHandler.ScoreProduct)
			products.GET("/:code/similar", productHandler.GetSimilarProducts)
		}
	}

	// 404 handler
	r.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "route")
	})

	return r, limiter
}
