package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

// DefaultChannelPrefix is prepended to the account id to build the channel name.
const DefaultChannelPrefix = "notifications:"

var _ usecase.Notifier = (*RedisNotifier)(nil)

// RedisNotifier publishes notifications on a per-account Redis channel.
type RedisNotifier struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(client *redis.Client, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisNotifier{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Channel returns the channel notifications for accountID are published on.
func (n *RedisNotifier) Channel(accountID string) string {
	return n.prefix + accountID
}

// Notify publishes a JSON encoded domain.Notification.
func (n *RedisNotifier) Notify(ctx context.Context, account *domain.Account, message string) error {
	payload, err := json.Marshal(domain.Notification{
		AccountID: account.ID,
		Message:   message,
		CreatedAt: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := n.client.Publish(ctx, n.Channel(account.ID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
