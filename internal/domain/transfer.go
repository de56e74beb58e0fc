package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest is the input of a single pairwise transfer.
// FromAccountID may equal ToAccountID; such a transfer nets to zero.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// Validate checks the amount. Account existence is checked by the coordinator.
func (r TransferRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return &InvalidAmountError{Amount: r.Amount}
	}
	return nil
}

// Transfer is the record of a committed money movement between two accounts.
type Transfer struct {
	CreatedAt     time.Time
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// Involves reports whether the account took part in the transfer.
func (t *Transfer) Involves(accountID string) bool {
	return t.FromAccountID == accountID || t.ToAccountID == accountID
}
