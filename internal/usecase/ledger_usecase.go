package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInconsistentLedger is returned when balances no longer add up.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not match opening total")
)

// CriticalSection runs fn while no transfer can mutate balances.
type CriticalSection interface {
	Exclusive(fn func() error) error
}

// LedgerReport summarizes a consistency check.
type LedgerReport struct {
	Accounts         int
	TotalBalance     decimal.Decimal
	ExpectedBalance  decimal.Decimal
	NegativeAccounts []string
	Consistent       bool
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	accountStore AccountStore
	section      CriticalSection
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountStore AccountStore, section CriticalSection) *LedgerUseCase {
	return &LedgerUseCase{
		accountStore: accountStore,
		section:      section,
	}
}

// CheckConsistency verifies that no balance is negative and that the sum of
// all balances still equals the sum of opening balances.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*LedgerReport, error) {
	report := &LedgerReport{}

	err := uc.section.Exclusive(func() error {
		accounts, expected, err := uc.accountStore.Snapshot(ctx)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, a := range accounts {
			balance := a.Balance()
			if balance.IsNegative() {
				report.NegativeAccounts = append(report.NegativeAccounts, a.ID)
			}
			total = total.Add(balance)
		}

		report.Accounts = len(accounts)
		report.TotalBalance = total
		report.ExpectedBalance = expected
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Consistent = len(report.NegativeAccounts) == 0 && report.TotalBalance.Equal(report.ExpectedBalance)
	if !report.Consistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
