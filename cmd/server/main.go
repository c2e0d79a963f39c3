package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/AlHudnitskii/walletledger/internal/adapter/http"
	"github.com/AlHudnitskii/walletledger/internal/adapter/http/handler"
	"github.com/AlHudnitskii/walletledger/internal/adapter/http/middleware"
	postgresRepo "github.com/AlHudnitskii/walletledger/internal/adapter/repository/postgres"
	redisRepo "github.com/AlHudnitskii/walletledger/internal/adapter/repository/redis"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/config"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/eventpublisher"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/logger"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/logging"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/metrics"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/postgres"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/rates"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/redis"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup loggers. HTTP and main use zerolog; the infrastructure
	// components log through slog.
	httpLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = httpLogger
	slogger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// Apply schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		LockTimeout: cfg.DatabaseLockTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis. The service degrades without it: no idempotency
	// keys, no report cache, events go to the log instead of a channel.
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running degraded")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier().WithLogger(slogger)

	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	m := metrics.New()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, outboxRepo, idGen).
		WithMetrics(m)
	accountUC := usecase.NewAccountUseCase(accountRepo, entryRepo)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, transactionRepo, entryRepo, userRepo, outboxRepo, idGen).
		WithRetrier(retrier).
		WithMetrics(m)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo, ledgerRepo).
		WithMetrics(m)
	reportUC := usecase.NewReportUseCase(reportRepo, rates.NewStaticProvider())
	if redisClient != nil {
		reportUC = reportUC.WithCache(redisRepo.NewCache(redisClient))
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	ledgerHandler := handler.NewLedgerHandler(reconciliationUC)
	reportHandler := handler.NewReportHandler(reportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Background workers stop when appCtx is cancelled.
	appCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-appCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.CleanupLimiters()
			}
		}
	}()

	// Drain the outbox in the background
	outboxPublisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  newOutboxPublisher(redisClient, cfg.OutboxChannel, slogger),
		Logger:     slogger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		MaxRetries: int32(cfg.OutboxMaxRetries),
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := outboxPublisher.Start(appCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("outbox publisher stopped")
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        userHandler,
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		LedgerHandler:      ledgerHandler,
		ReportHandler:      reportHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logger:             httpLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newOutboxPublisher picks the event sink: the Redis channel when Redis
// is up, the log otherwise.
func newOutboxPublisher(client *goredis.Client, channel string, logger *slog.Logger) eventpublisher.Publisher {
	if client == nil {
		return eventpublisher.NewLogPublisher(logger)
	}
	return redisRepo.NewPublisher(client, channel)
}
