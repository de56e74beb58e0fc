package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountStore AccountStore
	idGen        IDGenerator
	recorder     AccountRecorder
}

// AccountRecorder is notified of created accounts.
type AccountRecorder interface {
	AccountCreated()
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountStore AccountStore, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountStore: accountStore,
		idGen:        idGen,
	}
}

// WithRecorder sets the instrumentation sink and returns the use case.
func (uc *AccountUseCase) WithRecorder(recorder AccountRecorder) *AccountUseCase {
	uc.recorder = recorder
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	ID      string
	Balance decimal.Decimal
}

// CreateAccount creates a new account. An empty ID is replaced by a generated one.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	}

	account, err := domain.NewAccount(id, input.Balance)
	if err != nil {
		return nil, err
	}

	if err := uc.accountStore.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.recorder != nil {
		uc.recorder.AccountCreated()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountStore.Get(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := clampPage(input.Limit, input.Offset)
	return uc.accountStore.List(ctx, limit, offset)
}
