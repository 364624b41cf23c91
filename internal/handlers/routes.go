package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"social-feed-api/internal/middleware"
	"social-feed-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	AuthService services.AuthService
	UserService services.UserService
	PostService services.PostService
	FeedService services.FeedService
	TokenAuth   *middleware.AuthService
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	// Create handlers
	authHandler := NewAuthHandler(config.AuthService)
	userHandler := NewUserHandler(config.UserService)
	postHandler := NewPostHandler(config.PostService)
	feedHandler := NewFeedHandler(config.FeedService)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "social-feed-api",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (no auth required)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/confirm-email", authHandler.ConfirmEmail)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/confirm-password", authHandler.ConfirmPassword)
			auth.POST("/login", authHandler.Login)
		}

		// Protected API routes
		api := v1.Group("")
		api.Use(middleware.Authentication(config.TokenAuth))
		{
			// User routes
			users := api.Group("/users")
			{
				users.GET("/me", userHandler.Me)
				users.PUT("/me", userHandler.Update)
				users.DELETE("/me/avatar", userHandler.DeleteAvatar)
				users.GET("/search", userHandler.Search)
				users.POST("/:id/follow", userHandler.ToggleFollow)
			}

			// Post routes
			posts := api.Group("/posts")
			{
				posts.POST("", postHandler.Create)
				posts.GET("/:id", postHandler.Get)
				posts.POST("/:id/like", postHandler.ToggleLike)
				posts.POST("/:id/comment", postHandler.Comment)
			}

			// Feed routes
			feed := api.Group("/feed")
			{
				feed.GET("/home", feedHandler.Home)
				feed.GET("/user/:userId", feedHandler.ByUser)
			}
		}
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine) {
	// Request ID
	router.Use(middleware.RequestID())

	// CORS
	router.Use(middleware.CORS())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Request size limit (10MB, image uploads included)
	router.Use(middleware.RequestSizeLimit(10 * 1024 * 1024))

	// Request validation
	router.Use(middleware.RequestValidation())

	// Rate limiting (100 requests per second, burst of 200)
	router.Use(middleware.RateLimiter(100, 200))

	// Structured logging
	router.Use(middleware.StructuredLogger())

	// Performance monitoring (log requests over 1 second)
	router.Use(middleware.PerformanceMonitor(0))

	// Audit logging
	router.Use(middleware.AuditLogger())

	// Enhanced error handling
	router.Use(middleware.EnhancedErrorHandler())
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	dev := router.Group("/dev")
	{
		// Generate a token for a known subject, for local testing
		dev.POST("/token", func(c *gin.Context) {
			token, err := config.TokenAuth.GenerateToken(
				c.DefaultQuery("sub", "demo-user"),
				c.DefaultQuery("email", "demo@example.com"),
			)
			if err != nil {
				c.JSON(500, gin.H{"error": err.Error()})
				return
			}
			c.JSON(200, gin.H{"token": token})
		})
	}
}
