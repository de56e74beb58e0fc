package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() ResilientConfig {
	cfg := DefaultResilientConfig()
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = 2 * time.Millisecond
	cfg.MaxElapsedTime = time.Second
	return cfg
}

func TestResilientNotifier_RetriesTransientFailures(t *testing.T) {
	next := &flakyNotifier{failures: 2}
	n := NewResilientNotifier(next, fastConfig())

	err := n.Notify(context.Background(), newAccount(t, "A"), "debited 1 to B")

	require.NoError(t, err)
	assert.Equal(t, 3, next.Calls())
	assert.Equal(t, []string{"A: debited 1 to B"}, next.messages)
}

func TestResilientNotifier_GivesUpAfterMaxRetries(t *testing.T) {
	next := &flakyNotifier{failures: 100}
	cfg := fastConfig()
	cfg.MaxRetries = 2
	n := NewResilientNotifier(next, cfg)

	err := n.Notify(context.Background(), newAccount(t, "A"), "msg")

	require.ErrorIs(t, err, errDownstream)
	assert.Equal(t, 3, next.Calls())
}

func TestResilientNotifier_OpensBreaker(t *testing.T) {
	next := &flakyNotifier{failures: 100}
	cfg := fastConfig()
	cfg.MaxRetries = 0
	cfg.FailureThreshold = 2
	cfg.OpenTimeout = time.Hour
	n := NewResilientNotifier(next, cfg)
	account := newAccount(t, "A")

	for i := 0; i < 2; i++ {
		require.ErrorIs(t, n.Notify(context.Background(), account, "msg"), errDownstream)
	}
	assert.Equal(t, gobreaker.StateOpen, n.State())

	err := n.Notify(context.Background(), account, "msg")
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState), "got %v", err)
	assert.Equal(t, 2, next.Calls(), "open breaker must not call downstream")
}

func TestResilientNotifier_StopsOnCancelledContext(t *testing.T) {
	next := &flakyNotifier{failures: 100}
	cfg := fastConfig()
	cfg.MaxRetries = 50
	n := NewResilientNotifier(next, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Notify(ctx, newAccount(t, "A"), "msg")
	require.Error(t, err)
	assert.Less(t, next.Calls(), 50)
}
