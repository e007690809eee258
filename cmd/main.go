package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	configs "github.com/budgetly/expense-tracker/config"
	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/internal/handler"
	"github.com/budgetly/expense-tracker/internal/middleware"
	"github.com/budgetly/expense-tracker/internal/repository"
	"github.com/budgetly/expense-tracker/internal/router"
	"github.com/budgetly/expense-tracker/internal/service"
	"github.com/budgetly/expense-tracker/internal/session"
	"github.com/budgetly/expense-tracker/internal/token"
	"github.com/budgetly/expense-tracker/pkg/cache"
	"github.com/budgetly/expense-tracker/pkg/database"
	"github.com/budgetly/expense-tracker/pkg/logger"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		DSN:             config.DatabaseConnectionString(),
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 10,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// The aggregate cache is optional: without redis every query goes to
	// the database.
	cacheClient, err := cache.NewClient(config)
	if err != nil {
		logger.GetLogger().Warn("Redis unavailable, aggregate caching disabled", zap.Error(err))
		cacheClient = nil
	}
	defer cacheClient.Close()

	// Credential machinery
	codec, err := token.NewCodec(config.Auth.SigningAlgorithm)
	if err != nil {
		logger.GetLogger().Fatal("Failed to build token codec", zap.Error(err))
	}
	issuer := token.NewIssuer(codec, &config.Auth)
	cookies := session.NewCookieManager(config)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, issuer)
	categoryService := service.NewCategoryService(categoryRepo)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, cacheClient, config.Redis.AggregateTTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cookies, &config.Auth)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	healthHandler := handler.NewHealthHandler(db, cacheClient)

	gate := middleware.NewAuthGate(issuer)

	engine := router.NewRouter(
		authHandler,
		categoryHandler,
		expenseHandler,
		healthHandler,
		gate,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: config.App.Timeout,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Forced shutdown", zap.Error(err))
	}
}
