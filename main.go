package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vytara-server/internal/config"
	"vytara-server/internal/middleware"
	"vytara-server/internal/models"
	"vytara-server/internal/routes"
	"vytara-server/internal/store"
	"vytara-server/internal/workspace"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	envErr := godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Warn("no .env file loaded", zap.Error(envErr))
	}

	stores, accountStore, err := newStores(cfg)
	if err != nil {
		logger.Fatal("Error opening stores", zap.Error(err))
	}

	accounts := workspace.NewAccounts(accountStore)
	registry := workspace.NewRegistry(stores, workspace.Options{
		Location: cfg.Location(),
		Logger:   logger,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, accounts, registry, cfg, logger)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server running",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.String("timezone", cfg.Location().String()))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newStores picks the appointment and account stores. With MySQL both are
// persisted so a registered name cannot be reused through demo login after
// a restart.
func newStores(cfg *config.Config) (store.Provider, store.AccountStore, error) {
	if cfg.StoreDriver != config.StoreMySQL {
		return store.NewMemoryProvider(), store.NewMemoryAccounts(), nil
	}
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return &store.GormProvider{DB: db}, &store.GormAccounts{DB: db}, nil
}
