package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

var _ usecase.Notifier = (*LogNotifier)(nil)

// LogNotifier writes every notification as a structured log line.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message for the account.
func (n *LogNotifier) Notify(ctx context.Context, account *domain.Account, message string) error {
	n.logger.Info().
		Str("account_id", account.ID).
		Str("message", message).
		Msg("account notification")
	return nil
}
