package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
)

var errDownstream = errors.New("downstream unavailable")

// flakyNotifier fails the first failures calls, then succeeds.
type flakyNotifier struct {
	mu       sync.Mutex
	failures int
	calls    int
	messages []string
}

func (f *flakyNotifier) Notify(ctx context.Context, account *domain.Account, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= f.failures {
		return errDownstream
	}
	f.messages = append(f.messages, account.ID+": "+message)
	return nil
}

func (f *flakyNotifier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newAccount(t *testing.T, id string) *domain.Account {
	t.Helper()

	account, err := domain.NewAccount(id, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}
	return account
}
