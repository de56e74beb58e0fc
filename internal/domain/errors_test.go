package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid amount",
			err:      &InvalidAmountError{Amount: decimal.NewFromInt(-5)},
			sentinel: ErrInvalidAmount,
			message:  "invalid amount -5: must be greater than zero",
		},
		{
			name:     "account not found",
			err:      &AccountNotFoundError{ID: "ID-9"},
			sentinel: ErrAccountNotFound,
			message:  "account ID-9 not found",
		},
		{
			name:     "insufficient funds",
			err:      &InsufficientFundsError{AccountID: "ID-4"},
			sentinel: ErrInsufficientFunds,
			message:  "Insufficient balance in account ID-4",
		},
		{
			name:     "duplicate account",
			err:      &DuplicateAccountError{ID: "Id-123"},
			sentinel: ErrDuplicateAccount,
			message:  "Account id Id-123 already exists!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("wrapped: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Fatalf("expected %v to match %v", wrapped, tt.sentinel)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.err.Error())
			}
		})
	}
}

func TestTypedErrorsDoNotCrossMatch(t *testing.T) {
	err := &AccountNotFoundError{ID: "x"}
	if errors.Is(err, ErrInsufficientFunds) {
		t.Fatal("not-found must not match insufficient funds")
	}
}
