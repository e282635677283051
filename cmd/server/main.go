package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/ledgercore/internal/adapter/http"
	"github.com/iho/ledgercore/internal/adapter/http/handler"
	memoryRepo "github.com/iho/ledgercore/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/ledgercore/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ledgercore/internal/adapter/repository/redis"
	"github.com/iho/ledgercore/internal/infrastructure/config"
	"github.com/iho/ledgercore/internal/infrastructure/logger"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
	"github.com/iho/ledgercore/internal/infrastructure/postgres"
	"github.com/iho/ledgercore/internal/infrastructure/redis"
	"github.com/iho/ledgercore/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	ctx := context.Background()

	var (
		accountRepo      usecase.AccountRepository
		txnRepo          usecase.TransactionRepository
		ledgerRepo       usecase.LedgerRepository
		txManager        usecase.TransactionManager
		retrier          usecase.Retrier
		idempotencyStore usecase.IdempotencyStore
		pool             *pgxpool.Pool
		redisClient      *goredis.Client
	)

	healthChecks := map[string]func(context.Context) error{}

	switch cfg.StorageBackend {
	case "postgres":
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		accountRepo = postgresRepo.NewAccountRepository(pool)
		txnRepo = postgresRepo.NewTransactionRepository(pool)
		ledgerRepo = postgresRepo.NewLedgerRepository(pool)
		txManager = postgresRepo.NewTxManager(pool)
		retrier = postgresRepo.NewRetrier(appLogger)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)

		healthChecks["postgres"] = pool.Ping
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}

	case "memory":
		store := memoryRepo.NewStore()

		accountRepo = memoryRepo.NewAccountRepository(store)
		txnRepo = memoryRepo.NewTransactionRepository(store)
		ledgerRepo = memoryRepo.NewLedgerRepository(store)
		txManager = memoryRepo.NewTxManager(store)
		log.Info().Msg("using in-memory storage backend")

	default:
		log.Fatal().Str("backend", cfg.StorageBackend).Msg("unknown storage backend")
	}

	idGen := postgresRepo.NewULIDGenerator()
	appMetrics := metrics.New()

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	postingUC := usecase.NewPostingUseCase(txManager, accountRepo, txnRepo, idGen, retrier)
	ledgerUC := usecase.NewLedgerUseCase(accountUC, postingUC, ledgerRepo)

	accountHandler := handler.NewAccountHandler(ledgerUC, appMetrics)
	transactionHandler := handler.NewTransactionHandler(ledgerUC, appMetrics, cfg.PostTimeout)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(healthChecks)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		LedgerHandler:      ledgerHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Logger:             appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("backend", cfg.StorageBackend).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
