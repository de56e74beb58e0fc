package memory

import (
	"context"
	"sync"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

var _ usecase.TransferLog = (*TransferLog)(nil)

// TransferLog implements usecase.TransferLog as an append-only history.
type TransferLog struct {
	mu        sync.RWMutex
	transfers []*domain.Transfer
	byID      map[string]*domain.Transfer
	byAccount map[string][]*domain.Transfer
}

// NewTransferLog creates an empty TransferLog.
func NewTransferLog() *TransferLog {
	return &TransferLog{
		byID:      make(map[string]*domain.Transfer),
		byAccount: make(map[string][]*domain.Transfer),
	}
}

// Append records a committed transfer.
func (l *TransferLog) Append(ctx context.Context, transfer *domain.Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transfers = append(l.transfers, transfer)
	l.byID[transfer.ID] = transfer
	l.byAccount[transfer.FromAccountID] = append(l.byAccount[transfer.FromAccountID], transfer)
	if transfer.ToAccountID != transfer.FromAccountID {
		l.byAccount[transfer.ToAccountID] = append(l.byAccount[transfer.ToAccountID], transfer)
	}

	return nil
}

// GetByID retrieves a transfer by ID.
func (l *TransferLog) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	transfer, ok := l.byID[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}

	return transfer, nil
}

// ListByAccount lists transfers touching the account in commit order.
func (l *TransferLog) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all := l.byAccount[accountID]
	if offset >= len(all) {
		return []*domain.Transfer{}, nil
	}

	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}

	out := make([]*domain.Transfer, end-offset)
	copy(out, all[offset:end])
	return out, nil
}

// Len returns the number of recorded transfers.
func (l *TransferLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transfers)
}
