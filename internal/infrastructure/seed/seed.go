// Package seed loads opening accounts from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

// File is the on-disk seed format:
//
//	accounts:
//	  - id: Id-1
//	    balance: "1000.00"
type File struct {
	Accounts []Account `yaml:"accounts"`
}

// Account is a single seeded account.
type Account struct {
	ID      string `yaml:"id"`
	Balance string `yaml:"balance"`
}

// AccountCreator creates accounts.
type AccountCreator interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
}

// LoadFile reads and decodes the seed file at path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes a seed document.
func Decode(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &file, nil
}

// Apply creates every account in file. It stops at the first failure, so a
// duplicate id in the file is reported instead of silently skipped.
func Apply(ctx context.Context, creator AccountCreator, file *File) (int, error) {
	created := 0
	for i, acc := range file.Accounts {
		balance := decimal.Zero
		if acc.Balance != "" {
			var err error
			balance, err = decimal.NewFromString(acc.Balance)
			if err != nil {
				return created, fmt.Errorf("seed account %d (%s): invalid balance %q: %w", i, acc.ID, acc.Balance, err)
			}
		}

		if _, err := creator.CreateAccount(ctx, usecase.CreateAccountInput{
			ID:      acc.ID,
			Balance: balance,
		}); err != nil {
			return created, fmt.Errorf("seed account %d (%s): %w", i, acc.ID, err)
		}
		created++
	}
	return created, nil
}
