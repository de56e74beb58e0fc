package domain

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccountID       = errors.New("account id must not be empty")
	ErrNegativeOpeningBalance = errors.New("opening balance must not be negative")
)

// Account is a single in-memory account. The store owns it and hands out
// the same pointer to every caller, so balance changes are visible without
// re-fetching.
//
// Balance is mutated only by the transfer use case while it holds the
// process-wide transfer lock. The embedded RWMutex only keeps single reads
// race-free; it does not make a pair of accounts consistent.
type Account struct {
	ID        string
	CreatedAt time.Time

	mu             sync.RWMutex
	balance        decimal.Decimal
	openingBalance decimal.Decimal
}

// NewAccount creates an account with an opening balance. The id is kept as
// given; lookups match it exactly.
func NewAccount(id string, balance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidAccountID
	}
	if balance.IsNegative() {
		return nil, ErrNegativeOpeningBalance
	}

	return &Account{
		ID:             id,
		CreatedAt:      time.Now().UTC(),
		balance:        balance,
		openingBalance: balance,
	}, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// OpeningBalance returns the balance the account was created with.
func (a *Account) OpeningBalance() decimal.Decimal {
	return a.openingBalance
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance()) {
		return &InsufficientFundsError{AccountID: a.ID}
	}
	return nil
}

// Debit subtracts amount and returns the new balance.
func (a *Account) Debit(amount decimal.Decimal) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Sub(amount)
	return a.balance
}

// Credit adds amount and returns the new balance.
func (a *Account) Credit(amount decimal.Decimal) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	return a.balance
}
