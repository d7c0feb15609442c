package main

import (
	"context"
	"fmt"
	"os"

	"kasatakip/internal/config"
	"kasatakip/internal/database"
	"kasatakip/internal/logger"
	"kasatakip/internal/server"
	"kasatakip/internal/session"
	"kasatakip/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if appConfig.SeedOnBoot {
		data, err := database.LoadSeedData(nil)
		if err != nil {
			return err
		}
		if err := database.Seed(dbManager.DB(), data); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
	}

	var sessions session.Store
	if appConfig.RedisAddr != "" {
		client, err := session.Connect(context.Background(), appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, appConfig.SessionTTL)
		log.Infow("Using redis session store", "addr", appConfig.RedisAddr)
	} else {
		sessions = session.NewMemoryStore(appConfig.SessionTTL)
		log.Info("Using in-memory session store")
	}

	validator.Register()

	router := server.NewRouter(server.Deps{
		DB:       dbManager.DB(),
		Sessions: sessions,
		Config:   appConfig,
	})

	log.Infof("Starting KasaTakip server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
