package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-feed-api/internal/config"
	"social-feed-api/internal/handlers"
	"social-feed-api/internal/middleware"
	"social-feed-api/pkg/server"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependencies
	container, err := server.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handlers.SetupMiddleware(router)

	tokenAuth := middleware.NewAuthService(&middleware.AuthConfig{
		JWTSecret:     cfg.JWT.Secret,
		TokenDuration: time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
	})

	routerConfig := &handlers.RouterConfig{
		AuthService: container.AuthService,
		UserService: container.UserService,
		PostService: container.PostService,
		FeedService: container.FeedService,
		TokenAuth:   tokenAuth,
	}

	handlers.SetupRoutes(router, routerConfig)

	if cfg.Environment != "production" {
		handlers.SetupDevelopmentRoutes(router, routerConfig)
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
