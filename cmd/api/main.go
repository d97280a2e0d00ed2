package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finwallet/internal/balance"
	"finwallet/internal/config"
	"finwallet/internal/currency"
	"finwallet/internal/database"
	"finwallet/internal/handlers"
	"finwallet/internal/logger"
	"finwallet/internal/middleware"
	"finwallet/internal/server"
	"finwallet/internal/services"
	"finwallet/internal/validator"

	"gorm.io/gorm"
)

// @title           Finwallet API
// @version         1.0
// @description     Multi-currency wallets with a single converted total balance.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey PipelineAPIKey
// @in header
// @name X-API-Key
// @description Shared key of the rate pipeline.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
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

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	db := dbManager.DB()
	source, err := newRateSource(appConfig, db)
	if err != nil {
		return err
	}
	converter := currency.NewConverter(source)

	// Initialize services
	userService := services.NewUserService(db)
	walletService := services.NewWalletService(db, converter, services.WalletConfig{
		ReportingCurrency: appConfig.ReportingCurrency,
		Policy:            balance.Policy(appConfig.UnknownRatePolicy),
	})
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	rateService := services.NewRateService(db)
	auditService := services.NewAuditService(db)

	tokens := middleware.NewTokenManager(appConfig.JWTSecret, appConfig.JWTExpirationDur)

	router := server.NewRouter(server.Dependencies{
		Auth:            handlers.NewAuthHandler(userService, tokens),
		Wallet:          handlers.NewWalletHandler(walletService, auditService),
		Category:        handlers.NewCategoryHandler(categoryService, auditService),
		Transaction:     handlers.NewTransactionHandler(transactionService, auditService),
		Rate:            handlers.NewRateHandler(rateService),
		Audit:           handlers.NewAuditHandler(auditService),
		Tokens:          tokens,
		PipelineAPIKeys: appConfig.PipelineAPIKeys,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Finwallet server on port %s (reporting currency %s, rate source %s)",
			appConfig.Port, appConfig.ReportingCurrency, appConfig.RateSource)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infof("Received %s, shutting down server...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newRateSource builds the configured rate source, fronted by the Redis rate
// cache when REDIS_ADDR is set.
func newRateSource(cfg *config.Config, db *gorm.DB) (currency.RateSource, error) {
	log := logger.Get()

	var source currency.RateSource
	switch cfg.RateSource {
	case config.RateSourceDatabase:
		source = currency.NewDBRates(db, cfg.ReportingCurrency)
	case config.RateSourceYahoo:
		source = currency.NewYahooRates(&http.Client{Timeout: cfg.RateRequestTimeout}, cfg.ForexBaseURL, cfg.RateCacheTTL)
	default:
		source = currency.NewStaticRates(cfg.ReportingCurrency, cfg.StaticRates)
	}

	if cfg.RedisAddr == "" {
		return source, nil
	}

	store := currency.NewRedisStore(currency.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword), "finwallet:rates")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Infof("Caching exchange rates in redis for %s", cfg.RateCacheTTL)
	return currency.NewCachedRates(source, store, cfg.RateCacheTTL), nil
}
