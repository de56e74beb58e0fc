package dto

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

// Validation errors for request bodies.
var (
	ErrSourceAccountRequired      = errors.New("Source account ID cannot be empty")
	ErrDestinationAccountRequired = errors.New("Destination account ID cannot be empty")
	ErrAmountRequired             = errors.New("Transfer amount is required")
	ErrAccountIDRequired          = errors.New("Account id cannot be empty")
	ErrBalanceRequired            = errors.New("Initial balance is required")
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	AccountID string           `json:"account_id"`
	Balance   *decimal.Decimal `json:"balance"`
}

// Validate checks required fields. Balance sign is checked by the domain.
func (r *CreateAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return ErrAccountIDRequired
	}
	if r.Balance == nil {
		return ErrBalanceRequired
	}
	return nil
}

// ToUseCaseInput converts to use case input. Ids are trimmed here so that
// creation and transfers agree on the stored id.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	input := usecase.CreateAccountInput{ID: strings.TrimSpace(r.AccountID)}
	if r.Balance != nil {
		input.Balance = *r.Balance
	}
	return input
}

// CreateTransferRequest represents a request to move money between accounts.
type CreateTransferRequest struct {
	AccountFromID string           `json:"account_from_id"`
	AccountToID   string           `json:"account_to_id"`
	Amount        *decimal.Decimal `json:"amount"`
}

// Validate checks required fields. A non-positive amount is rejected by the
// transfer use case.
func (r *CreateTransferRequest) Validate() error {
	if strings.TrimSpace(r.AccountFromID) == "" {
		return ErrSourceAccountRequired
	}
	if strings.TrimSpace(r.AccountToID) == "" {
		return ErrDestinationAccountRequired
	}
	if r.Amount == nil {
		return ErrAmountRequired
	}
	return nil
}

// ToDomain converts to a domain transfer request.
func (r *CreateTransferRequest) ToDomain() domain.TransferRequest {
	req := domain.TransferRequest{
		FromAccountID: strings.TrimSpace(r.AccountFromID),
		ToAccountID:   strings.TrimSpace(r.AccountToID),
	}
	if r.Amount != nil {
		req.Amount = *r.Amount
	}
	return req
}
