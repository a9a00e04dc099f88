package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/expensetracker/internal/adapter/http"
	"github.com/iho/expensetracker/internal/adapter/http/handler"
	"github.com/iho/expensetracker/internal/adapter/http/middleware"
	"github.com/iho/expensetracker/internal/adapter/ratesource"
	postgresRepo "github.com/iho/expensetracker/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/expensetracker/internal/adapter/repository/redis"
	"github.com/iho/expensetracker/internal/adapter/repository/retry"
	sqliteRepo "github.com/iho/expensetracker/internal/adapter/repository/sqlite"
	"github.com/iho/expensetracker/internal/infrastructure/config"
	"github.com/iho/expensetracker/internal/infrastructure/idgen"
	"github.com/iho/expensetracker/internal/infrastructure/logger"
	"github.com/iho/expensetracker/internal/infrastructure/metrics"
	"github.com/iho/expensetracker/internal/infrastructure/postgres"
	"github.com/iho/expensetracker/internal/infrastructure/redis"
	"github.com/iho/expensetracker/internal/infrastructure/sqlite"
	"github.com/iho/expensetracker/internal/usecase"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxIdle         = time.Hour
)

// storage is the persistence backend selected by STORAGE_DRIVER.
type storage struct {
	txManager usecase.TransactionManager
	entryRepo usecase.EntryRepository
	retryable retry.Classifier
	pinger    handler.Pinger
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "expensetracker",
	})
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage initialization failure is the one fatal startup error.
	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to initialize storage")
	}
	defer store.close()

	redisClient := connectRedis(ctx, cfg, appLogger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	retrier := retry.NewRetrier(store.retryable, appLogger)
	entryUC := usecase.NewEntryUseCase(store.txManager, store.entryRepo, idgen.NewULIDGenerator(), retrier).
		WithMetrics(m).
		WithLogger(appLogger)

	var rateCache usecase.RateCache
	if redisClient != nil && cfg.RateCacheEnabled {
		rateCache = redisRepo.NewRateCache(redisClient, cfg.RateCacheTTL)
	}
	rateUC := usecase.NewRateUseCase(ratesource.NewClient(cfg.RatesURL, cfg.RatesTimeout, appLogger), rateCache).
		WithMetrics(m).
		WithLogger(appLogger)
	if err := rateUC.Warm(ctx); err != nil {
		appLogger.Warn().Err(err).Msg("failed to restore cached rate table")
	}

	summaryUC := usecase.NewSummaryUseCase(entryUC, rateUC)

	routerCfg := httpAdapter.RouterConfig{
		EntryHandler:   handler.NewEntryHandler(entryUC),
		SummaryHandler: handler.NewSummaryHandler(summaryUC, cfg.TopSpendingCount),
		RateHandler:    handler.NewRateHandler(rateUC),
		HealthHandler:  handler.NewHealthHandler(healthDependencies(cfg, store, redisClient)...),
		IdempotencyTTL: cfg.IdempotencyTTL,
		Metrics:        m,
		Logger:         appLogger,
	}
	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info().Str("port", cfg.HTTPPort).Str("driver", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rateUC.Run(gctx, cfg.RatesRefreshInterval)
		return nil
	})

	if routerCfg.RateLimiter != nil {
		g.Go(func() error {
			routerCfg.RateLimiter.RunCleanup(limiterCleanupInterval, limiterMaxIdle, gctx.Done())
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}

	appLogger.Info().Msg("server stopped")
}

// openStorage connects to the configured backend and applies its migrations.
func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("connected to postgres")

		return postgresStorage(pool), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.RunMigrations(cfg.SQLitePath, logger); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite database")

		return sqliteStorage(db), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func postgresStorage(pool *pgxpool.Pool) *storage {
	return &storage{
		txManager: postgresRepo.NewTxManager(pool),
		entryRepo: postgresRepo.NewEntryRepository(pool),
		retryable: postgresRepo.IsRetryableError,
		pinger:    pool,
		close:     pool.Close,
	}
}

func sqliteStorage(db *sql.DB) *storage {
	return &storage{
		txManager: sqliteRepo.NewTxManager(db),
		entryRepo: sqliteRepo.NewEntryRepository(db),
		retryable: sqliteRepo.IsBusyError,
		pinger:    handler.PingerFunc(db.PingContext),
		close:     func() { _ = db.Close() },
	}
}

// connectRedis returns nil when Redis is not configured or unreachable.
// The service runs without rate caching and idempotency in that case.
func connectRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *goredis.Client {
	if cfg.RedisURL == "" {
		logger.Info().Msg("redis disabled")
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, continuing without cache and idempotency")
		return nil
	}
	logger.Info().Msg("connected to redis")

	return client
}

func healthDependencies(cfg *config.Config, store *storage, redisClient *goredis.Client) []handler.Dependency {
	deps := []handler.Dependency{{Name: cfg.StorageDriver, Pinger: store.pinger}}
	if redisClient != nil {
		deps = append(deps, handler.Dependency{
			Name:   "redis",
			Pinger: handler.PingerFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		})
	}
	return deps
}
