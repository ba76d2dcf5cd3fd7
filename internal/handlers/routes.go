package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"clubdvigi-api/internal/config"
	"clubdvigi-api/internal/middleware"
	"clubdvigi-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	RegistrationService services.RegistrationService
	Gatherer            prometheus.Gatherer
	RateLimit           config.RateLimitConfig
	Version             string
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	registrationHandler := NewRegistrationHandler(cfg.RegistrationService, nil)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "clubdvigi-api",
			"version": cfg.Version,
		})
	})

	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// Every method reaches the handlers so they can answer 405 themselves
	api := router.Group("/api")
	api.Use(
		middleware.CORS(),
		middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		middleware.RequestSizeLimit(middleware.DefaultMaxBodyBytes),
	)
	{
		api.Any("/clubdvigi-upsert", registrationHandler.Upsert)
		api.Any("/lookup", registrationHandler.Lookup)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine) {
	// Request ID
	router.Use(middleware.RequestID())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Structured logging
	router.Use(middleware.StructuredLogger())

	// Error handling
	router.Use(middleware.ErrorHandler())
}
