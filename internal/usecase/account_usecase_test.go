package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
	"github.com/iho/memledger/internal/usecase/mocks"
)

type countingAccountRecorder struct{ created int }

func (r *countingAccountRecorder) AccountCreated() { r.created++ }

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		setupMocks  func(*mocks.MockAccountStore, *mocks.MockIDGenerator)
		expectID    string
		expectError error
	}{
		{
			name: "successful account creation",
			input: usecase.CreateAccountInput{
				ID:      "Id-123",
				Balance: decimal.NewFromInt(1000),
			},
			setupMocks: func(store *mocks.MockAccountStore, idGen *mocks.MockIDGenerator) {
				store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectID: "Id-123",
		},
		{
			name: "generated id when none given",
			input: usecase.CreateAccountInput{
				Balance: decimal.NewFromInt(10),
			},
			setupMocks: func(store *mocks.MockAccountStore, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Generate().Return("generated-1")
				store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectID: "generated-1",
		},
		{
			name: "duplicate id",
			input: usecase.CreateAccountInput{
				ID:      "Id-123",
				Balance: decimal.NewFromInt(1000),
			},
			setupMocks: func(store *mocks.MockAccountStore, idGen *mocks.MockIDGenerator) {
				store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.DuplicateAccountError{ID: "Id-123"})
			},
			expectError: domain.ErrDuplicateAccount,
		},
		{
			name: "negative opening balance never reaches the store",
			input: usecase.CreateAccountInput{
				ID:      "Id-1",
				Balance: decimal.NewFromInt(-1),
			},
			setupMocks:  func(*mocks.MockAccountStore, *mocks.MockIDGenerator) {},
			expectError: domain.ErrNegativeOpeningBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			store := mocks.NewMockAccountStore(ctrl)
			idGen := mocks.NewMockIDGenerator(ctrl)
			tt.setupMocks(store, idGen)

			recorder := &countingAccountRecorder{}
			uc := usecase.NewAccountUseCase(store, idGen).WithRecorder(recorder)
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				if recorder.created != 0 {
					t.Errorf("expected no created account to be recorded")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.ID != tt.expectID {
				t.Errorf("expected id %q, got %q", tt.expectID, account.ID)
			}
			if !account.Balance().Equal(tt.input.Balance) {
				t.Errorf("expected balance %s, got %s", tt.input.Balance, account.Balance())
			}
			if recorder.created != 1 {
				t.Errorf("expected 1 created account recorded, got %d", recorder.created)
			}
		})
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)

	stored := mustAccount(t, "Id-123", 1000)
	store := mocks.NewMockAccountStore(ctrl)
	store.EXPECT().Get(gomock.Any(), "Id-123").Return(stored, nil)
	store.EXPECT().Get(gomock.Any(), "non-existent").Return(nil, &domain.AccountNotFoundError{ID: "non-existent"})

	uc := usecase.NewAccountUseCase(store, mocks.NewMockIDGenerator(ctrl))

	account, err := uc.GetAccount(context.Background(), "Id-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account != stored {
		t.Error("expected the stored account reference")
	}

	if _, err := uc.GetAccount(context.Background(), "non-existent"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	tests := []struct {
		name       string
		input      usecase.ListAccountsInput
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", input: usecase.ListAccountsInput{}, wantLimit: 20, wantOffset: 0},
		{name: "capped", input: usecase.ListAccountsInput{Limit: 1000, Offset: 5}, wantLimit: 100, wantOffset: 5},
		{name: "negative offset", input: usecase.ListAccountsInput{Limit: 10, Offset: -3}, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			store := mocks.NewMockAccountStore(ctrl)
			store.EXPECT().List(gomock.Any(), tt.wantLimit, tt.wantOffset).Return([]*domain.Account{}, nil)

			uc := usecase.NewAccountUseCase(store, mocks.NewMockIDGenerator(ctrl))
			if _, err := uc.ListAccounts(context.Background(), tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
