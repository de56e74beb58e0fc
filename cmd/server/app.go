package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/memledger/internal/adapter/http"
	"github.com/iho/memledger/internal/adapter/http/handler"
	"github.com/iho/memledger/internal/adapter/http/middleware"
	"github.com/iho/memledger/internal/adapter/notifier"
	"github.com/iho/memledger/internal/adapter/repository/memory"
	redisRepo "github.com/iho/memledger/internal/adapter/repository/redis"
	"github.com/iho/memledger/internal/infrastructure/config"
	"github.com/iho/memledger/internal/infrastructure/metrics"
	"github.com/iho/memledger/internal/infrastructure/redis"
	"github.com/iho/memledger/internal/infrastructure/seed"
	"github.com/iho/memledger/internal/usecase"
)

// app is the wired service.
type app struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	redisClient *goredis.Client

	accounts  *usecase.AccountUseCase
	transfers *usecase.TransferUseCase
	ledger    *usecase.LedgerUseCase
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*app, error) {
	m := metrics.New(reg)

	a := &app{}

	if cfg.RedisEnabled() {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.redisClient = client
		logger.Info().Msg("connected to redis")
	}

	// Initialize repositories
	accountStore := memory.NewAccountStore()
	transferLog := memory.NewTransferLog()
	idGen := memory.NewULIDGenerator()

	// Initialize use cases
	a.accounts = usecase.NewAccountUseCase(accountStore, idGen).WithRecorder(m)
	a.transfers = usecase.NewTransferUseCase(
		accountStore,
		transferLog,
		a.buildNotifier(cfg, logger),
		idGen,
		usecase.WithTransferLogger(logger),
		usecase.WithTransferRecorder(m),
	)
	a.ledger = usecase.NewLedgerUseCase(accountStore, a.transfers)

	if cfg.SeedFile != "" {
		file, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		created, err := seed.Apply(ctx, a.accounts, file)
		if err != nil {
			a.Close()
			return nil, err
		}
		logger.Info().Int("accounts", created).Str("file", cfg.SeedFile).Msg("seeded accounts")
	}

	a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	a.rateLimiter.OnLimited = m.RateLimited

	transferLimiter := middleware.NewConcurrencyLimiter(cfg.TransferMaxInflight, cfg.TransferQueueWait)
	transferLimiter.OnShed = func() { m.Shed("transfers") }

	var (
		redisPinger      handler.Pinger
		idempotencyStore usecase.IdempotencyStore
	)
	if a.redisClient != nil {
		client := a.redisClient
		redisPinger = handler.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		idempotencyStore = redisRepo.NewIdempotencyStore(client)
	}

	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(a.accounts),
		TransferHandler:  handler.NewTransferHandler(a.transfers),
		LedgerHandler:    handler.NewLedgerHandler(a.ledger),
		HealthHandler:    handler.NewHealthHandler(redisPinger),
		Logger:           logger,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		RateLimiter:      a.rateLimiter,
		TransferLimiter:  transferLimiter,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	return a, nil
}

// buildNotifier always logs notifications and additionally publishes them to
// Redis when it is configured.
func (a *app) buildNotifier(cfg *config.Config, logger zerolog.Logger) usecase.Notifier {
	logNotifier := notifier.NewLogNotifier(logger.With().Str("component", "notifier").Logger())
	if a.redisClient == nil {
		return logNotifier
	}

	resilient := notifier.NewResilientNotifier(
		notifier.NewRedisNotifier(a.redisClient, cfg.NotifyChannelPrefix),
		notifier.ResilientConfig{
			Name:             "redis-notifier",
			MaxRetries:       cfg.NotifyMaxRetries,
			InitialInterval:  cfg.NotifyRetryInterval,
			FailureThreshold: cfg.NotifyBreakerThreshold,
			OpenTimeout:      cfg.NotifyBreakerTimeout,
			Logger:           logger,
		},
	)

	return notifier.NewMultiNotifier(logNotifier, resilient)
}

// Close releases external connections.
func (a *app) Close() error {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	return nil
}
