package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

var _ usecase.AccountStore = (*AccountStore)(nil)

// AccountStore implements usecase.AccountStore with a map guarded by its own
// RWMutex. The lock protects the map only; balances are owned by the transfer
// use case.
type AccountStore struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	openingTotal decimal.Decimal
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts:     make(map[string]*domain.Account),
		openingTotal: decimal.Zero,
	}
}

// Create inserts the account if no account with the same id exists.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return &domain.DuplicateAccountError{ID: account.ID}
	}

	s.accounts[account.ID] = account
	s.openingTotal = s.openingTotal.Add(account.OpeningBalance())

	return nil
}

// Get returns the stored account.
func (s *AccountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, &domain.AccountNotFoundError{ID: id}
	}

	return account, nil
}

// List returns accounts ordered by id.
func (s *AccountStore) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	s.mu.RLock()
	accounts := s.sortedLocked()
	s.mu.RUnlock()

	if offset >= len(accounts) {
		return []*domain.Account{}, nil
	}

	end := offset + limit
	if limit <= 0 || end > len(accounts) {
		end = len(accounts)
	}

	return accounts[offset:end], nil
}

// Snapshot returns all accounts and the sum of their opening balances.
func (s *AccountStore) Snapshot(ctx context.Context) ([]*domain.Account, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(), s.openingTotal, nil
}

// Len returns the number of stored accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func (s *AccountStore) sortedLocked() []*domain.Account {
	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ID < accounts[j].ID
	})

	return accounts
}
