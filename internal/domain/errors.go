package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transfer errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrTransferNotFound = errors.New("transfer not found")
)

// InvalidAmountError is returned when a transfer amount is not strictly positive.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %s: must be greater than zero", e.Amount)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// AccountNotFoundError is returned when an account id is unknown.
type AccountNotFoundError struct {
	ID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.ID)
}

func (e *AccountNotFoundError) Is(target error) bool { return target == ErrAccountNotFound }

// InsufficientFundsError is returned when the source balance is below the amount.
type InsufficientFundsError struct {
	AccountID string
}

func (e *InsufficientFundsError) Error() string {
	return "Insufficient balance in account " + e.AccountID
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }

// DuplicateAccountError is returned by account creation when the id is taken.
type DuplicateAccountError struct {
	ID string
}

func (e *DuplicateAccountError) Error() string {
	return "Account id " + e.ID + " already exists!"
}

func (e *DuplicateAccountError) Is(target error) bool { return target == ErrDuplicateAccount }
