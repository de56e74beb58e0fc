package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/memledger/internal/domain"
)

// TransferRecorder receives transfer outcomes for instrumentation.
type TransferRecorder interface {
	TransferCompleted(amount decimal.Decimal, elapsed time.Duration)
	TransferFailed(reason string)
	NotificationFailed()
}

// TransferUseCase coordinates transfers between accounts.
//
// Every transfer resolves, checks and mutates both accounts under a single
// process-wide mutex, so transfers are linearized and never need to order
// two per-account locks. Notifications are delivered after the mutex is
// released and never affect the result of a committed transfer.
type TransferUseCase struct {
	mu sync.Mutex

	accountStore AccountStore
	transferLog  TransferLog
	notifier     Notifier
	idGen        IDGenerator
	logger       zerolog.Logger
	recorder     TransferRecorder
}

// TransferOption configures optional TransferUseCase collaborators.
type TransferOption func(*TransferUseCase)

// WithTransferLogger sets the logger used for delivery failures.
func WithTransferLogger(logger zerolog.Logger) TransferOption {
	return func(uc *TransferUseCase) {
		uc.logger = logger
	}
}

// WithTransferRecorder sets the instrumentation sink.
func WithTransferRecorder(recorder TransferRecorder) TransferOption {
	return func(uc *TransferUseCase) {
		if recorder != nil {
			uc.recorder = recorder
		}
	}
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	accountStore AccountStore,
	transferLog TransferLog,
	notifier Notifier,
	idGen IDGenerator,
	opts ...TransferOption,
) *TransferUseCase {
	uc := &TransferUseCase{
		accountStore: accountStore,
		transferLog:  transferLog,
		notifier:     notifier,
		idGen:        idGen,
		logger:       zerolog.Nop(),
		recorder:     nopRecorder{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Transfer moves req.Amount from one account to another.
//
// Failures are returned as *domain.InvalidAmountError,
// *domain.AccountNotFoundError or *domain.InsufficientFundsError; in every
// failure case no balance has changed and no notification was sent.
func (uc *TransferUseCase) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.Transfer, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		uc.recorder.TransferFailed(failureReason(err))
		return nil, err
	}

	transfer, from, to, err := uc.commit(ctx, req)
	if err != nil {
		uc.recorder.TransferFailed(failureReason(err))
		return nil, err
	}

	// The transfer is committed; a caller going away must not cancel delivery.
	deliverCtx := context.WithoutCancel(ctx)
	uc.deliver(deliverCtx, transfer, from, domain.DebitMessage(transfer.Amount, to.ID))
	uc.deliver(deliverCtx, transfer, to, domain.CreditMessage(transfer.Amount, from.ID))

	uc.recorder.TransferCompleted(transfer.Amount, time.Since(start))

	return transfer, nil
}

// commit is the critical section. Nothing is mutated before every check passed.
func (uc *TransferUseCase) commit(ctx context.Context, req domain.TransferRequest) (*domain.Transfer, *domain.Account, *domain.Account, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	from, err := uc.accountStore.Get(ctx, req.FromAccountID)
	if err != nil {
		return nil, nil, nil, err
	}

	to, err := uc.accountStore.Get(ctx, req.ToAccountID)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := from.ValidateDebit(req.Amount); err != nil {
		return nil, nil, nil, err
	}

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        req.Amount,
		CreatedAt:     time.Now().UTC(),
	}

	// Appended under the lock so history order matches commit order.
	if uc.transferLog != nil {
		if err := uc.transferLog.Append(ctx, transfer); err != nil {
			return nil, nil, nil, err
		}
	}

	from.Debit(req.Amount)
	to.Credit(req.Amount)

	return transfer, from, to, nil
}

func (uc *TransferUseCase) deliver(ctx context.Context, transfer *domain.Transfer, account *domain.Account, message string) {
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.Notify(ctx, account, message); err != nil {
		uc.recorder.NotificationFailed()
		uc.logger.Warn().
			Err(err).
			Str("transfer_id", transfer.ID).
			Str("account_id", account.ID).
			Str("message", message).
			Msg("notification delivery failed")
	}
}

// Exclusive runs fn inside the transfer critical section, so fn observes
// balances that no transfer is halfway through changing.
func (uc *TransferUseCase) Exclusive(fn func() error) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return fn()
}

// GetTransfer retrieves a transfer by ID. Without a transfer log nothing is
// recorded, so every lookup is a miss.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	if uc.transferLog == nil {
		return nil, domain.ErrTransferNotFound
	}
	return uc.transferLog.GetByID(ctx, id)
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists transfers for an account, oldest first.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	if _, err := uc.accountStore.Get(ctx, input.AccountID); err != nil {
		return nil, err
	}

	if uc.transferLog == nil {
		return []*domain.Transfer{}, nil
	}

	limit, offset := clampPage(input.Limit, input.Offset)
	return uc.transferLog.ListByAccount(ctx, input.AccountID, limit, offset)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal"
	}
}

type nopRecorder struct{}

func (nopRecorder) TransferCompleted(decimal.Decimal, time.Duration) {}
func (nopRecorder) TransferFailed(string)                            {}
func (nopRecorder) NotificationFailed()                              {}
