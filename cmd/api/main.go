package main

import (
	"fmt"
	"net/http"
	"os"

	"munibudget/internal/config"
	"munibudget/internal/database"
	"munibudget/internal/handlers"
	"munibudget/internal/logger"
	"munibudget/internal/middleware"
	"munibudget/internal/services"
	"munibudget/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager; falls back to the in-memory stand-in when
	// PostgreSQL is unreachable so the form stays usable.
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	municipalityService := services.NewMunicipalityService(dbManager.DB())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(dbManager.Status)
	municipalityHandler := handlers.NewMunicipalityHandler(municipalityService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(appConfig.CORSOrigins()))

	// Home route
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Municipality Budget API Server is running")
	})

	// API routes
	api := router.Group("/api")
	api.GET("", healthHandler.Status)
	api.GET("/municipalities", municipalityHandler.List)
	api.GET("/municipalities/:code", municipalityHandler.GetByCode)
	api.POST("/saveFormData", municipalityHandler.Save)

	log.Infof("Starting Municipality Budget API server on port %s", appConfig.Port)
	log.Infof("Database: %s", dbManager.Status())
	return router.Run(":" + appConfig.Port)
}
