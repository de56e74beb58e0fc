package notifier

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

var _ usecase.Notifier = (*ResilientNotifier)(nil)

// ResilientConfig configures retries and the circuit breaker.
type ResilientConfig struct {
	Name            string
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration

	// FailureThreshold is the number of consecutive failed deliveries that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration

	Logger zerolog.Logger
}

// DefaultResilientConfig returns sensible defaults.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Name:             "notifier",
		MaxRetries:       3,
		InitialInterval:  50 * time.Millisecond,
		MaxInterval:      1 * time.Second,
		MaxElapsedTime:   5 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		Logger:           zerolog.Nop(),
	}
}

// ResilientNotifier retries a flaky notifier with exponential backoff and
// stops calling it while its circuit breaker is open.
type ResilientNotifier struct {
	next    usecase.Notifier
	breaker *gobreaker.CircuitBreaker[struct{}]
	cfg     ResilientConfig
}

// NewResilientNotifier wraps next.
func NewResilientNotifier(next usecase.Notifier, cfg ResilientConfig) *ResilientNotifier {
	defaults := DefaultResilientConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaults.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = defaults.MaxInterval
	}
	if cfg.MaxElapsedTime <= 0 {
		cfg.MaxElapsedTime = defaults.MaxElapsedTime
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}

	logger := cfg.Logger
	threshold := cfg.FailureThreshold

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    cfg.Name,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("notifier circuit breaker state changed")
		},
	})

	return &ResilientNotifier{
		next:    next,
		breaker: breaker,
		cfg:     cfg,
	}
}

// Notify delivers through the wrapped notifier. While the breaker is open it
// fails immediately with gobreaker.ErrOpenState.
func (n *ResilientNotifier) Notify(ctx context.Context, account *domain.Account, message string) error {
	_, err := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.retry(ctx, func() error {
			return n.next.Notify(ctx, account, message)
		})
	})
	return err
}

// State reports the breaker state.
func (n *ResilientNotifier) State() gobreaker.State {
	return n.breaker.State()
}

func (n *ResilientNotifier) retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.cfg.InitialInterval
	b.MaxInterval = n.cfg.MaxInterval
	b.MaxElapsedTime = n.cfg.MaxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		retryCount++
		if retryCount > n.cfg.MaxRetries {
			return backoff.Permanent(err)
		}

		n.cfg.Logger.Debug().
			Err(err).
			Int("retry", retryCount).
			Msg("notification failed, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}
