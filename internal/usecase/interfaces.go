package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
)

// AccountStore is the keyed container of accounts.
type AccountStore interface {
	// Create inserts the account if its id is free, otherwise returns
	// *domain.DuplicateAccountError.
	Create(ctx context.Context, account *domain.Account) error
	// Get returns the stored account itself, not a copy, or
	// *domain.AccountNotFoundError.
	Get(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	// Snapshot returns every account together with the sum of their opening
	// balances, read atomically with respect to Create.
	Snapshot(ctx context.Context) ([]*domain.Account, decimal.Decimal, error)
}

// Notifier delivers a message to an account holder.
type Notifier interface {
	Notify(ctx context.Context, account *domain.Account, message string) error
}

// TransferLog records committed transfers.
type TransferLog interface {
	Append(ctx context.Context, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore remembers the responses of mutating requests by key.
type IdempotencyStore interface {
	// Reserve claims key for a new request. When the key is already claimed
	// it returns reserved=false and the stored response, which is nil while
	// the first request is still in flight.
	Reserve(ctx context.Context, key string, ttl time.Duration) (reserved bool, response []byte, err error)
	// Complete stores the final response for a reserved key.
	Complete(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}
