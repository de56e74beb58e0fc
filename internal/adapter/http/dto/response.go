package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID: a.ID,
		Balance:   a.Balance(),
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse is a page of accounts. Count is the page length.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Count    int                `json:"count"`
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	AccountFromID string          `json:"account_from_id"`
	AccountToID   string          `json:"account_to_id"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		AccountFromID: t.FromAccountID,
		AccountToID:   t.ToAccountID,
		Amount:        t.Amount,
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// ListTransfersResponse is a page of transfers. Count is the page length.
type ListTransfersResponse struct {
	Transfers []*TransferResponse `json:"transfers"`
	Count     int                 `json:"count"`
}

// LedgerReportResponse is the result of a consistency check.
type LedgerReportResponse struct {
	Status           string          `json:"status"`
	Consistent       bool            `json:"consistent"`
	Accounts         int             `json:"accounts"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	ExpectedBalance  decimal.Decimal `json:"expected_balance"`
	NegativeAccounts []string        `json:"negative_accounts,omitempty"`
}

// LedgerReportFromUseCase converts a ledger report to response.
func LedgerReportFromUseCase(r *usecase.LedgerReport) *LedgerReportResponse {
	status := "consistent"
	if !r.Consistent {
		status = "inconsistent"
	}
	return &LedgerReportResponse{
		Status:           status,
		Consistent:       r.Consistent,
		Accounts:         r.Accounts,
		TotalBalance:     r.TotalBalance,
		ExpectedBalance:  r.ExpectedBalance,
		NegativeAccounts: r.NegativeAccounts,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
