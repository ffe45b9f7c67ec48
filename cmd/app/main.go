package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/auth"
	"projectmate-service/internal/config"
	"projectmate-service/internal/database"
	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
	"projectmate-service/internal/handler"
	"projectmate-service/internal/repository"
	"projectmate-service/internal/usecase"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Управляющее ядро: правила приходят из конфигурации
	engine, err := governance.NewEngine(governance.Rules{
		NoShowThreshold: cfg.MaxNoShowCount,
		PenaltyDuration: time.Duration(cfg.PenaltyDurationDays) * 24 * time.Hour,
		FeatureLimits: map[domain.FeatureType]int{
			domain.FeaturePortfolioGeneration: cfg.PortfolioGenerationLimit,
		},
	})
	if err != nil {
		logger.Fatalf("Invalid governance rules: %v", err)
	}

	// Токены
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenExpiryHours)*time.Hour)
	if err != nil {
		logger.Fatalf("Token manager init failed: %v", err)
	}

	// Репозитории
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	usageRepo := repository.NewUsageRepository(db)

	// Use Cases
	authUC := usecase.NewAuthUseCase(userRepo, tokens)
	userUC := usecase.NewUserUseCase(userRepo, engine)
	projectUC := usecase.NewProjectUseCase(projectRepo, userRepo, engine)
	appUC := usecase.NewApplicationUseCase(appRepo, projectRepo, userRepo, engine)
	featureUC := usecase.NewFeatureUseCase(usageRepo, userRepo, engine)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(authUC, userUC, projectUC, appUC, featureUC, logger)
	apiHandler.RegisterRoutes(e, tokens)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
