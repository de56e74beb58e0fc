package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
)

type countingRecorder struct {
	mu                   sync.Mutex
	completed            int
	failures             map[string]int
	notificationFailures int
}

func (r *countingRecorder) TransferCompleted(decimal.Decimal, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
}

func (r *countingRecorder) TransferFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = make(map[string]int)
	}
	r.failures[reason]++
}

func (r *countingRecorder) NotificationFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notificationFailures++
}

type sentNotification struct {
	AccountID string
	Message   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(ctx context.Context, account *domain.Account, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{AccountID: account.ID, Message: message})
	return nil
}

func (n *recordingNotifier) Sent() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentNotification, len(n.sent))
	copy(out, n.sent)
	return out
}
