package http

import (
	"github.com/gin-gonic/gin"

	"github.com/labelwise/backend/config"
	"github.com/labelwise/backend/internal/usecase"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, auth *usecase.AuthService) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", handler.Register)
			authGroup.POST("/login", handler.Login)
		}

		protected := v1.Group("")
		protected.Use(AuthMiddleware(auth))
		{
			protected.GET("/profile", handler.GetProfile)
			protected.PUT("/profile", handler.UpdateProfile)

			labels := protected.Group("/labels")
			{
				labels.POST("/analyze", handler.AnalyzeLabel)
			}

			products := protected.Group("/products")
			{
				products.POST("", handler.SubmitProduct)
				products.GET("/lookup", handler.GetProduct)
			}

			protected.POST("/translate", handler.Translate)
		}
	}

	return router
}
