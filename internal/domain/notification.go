package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification is a message delivered to an account holder after a transfer.
type Notification struct {
	AccountID string    `json:"account_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// DebitMessage is sent to the source account.
func DebitMessage(amount decimal.Decimal, toAccountID string) string {
	return "debited " + amount.String() + " to " + toAccountID
}

// CreditMessage is sent to the destination account.
func CreditMessage(amount decimal.Decimal, fromAccountID string) string {
	return "credited " + amount.String() + " from " + fromAccountID
}
