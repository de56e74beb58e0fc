package notifier

import (
	"context"
	"errors"

	"github.com/iho/memledger/internal/domain"
	"github.com/iho/memledger/internal/usecase"
)

var _ usecase.Notifier = (*MultiNotifier)(nil)

// MultiNotifier delivers to every notifier in order. A failing notifier does
// not stop delivery to the rest.
type MultiNotifier struct {
	notifiers []usecase.Notifier
}

// NewMultiNotifier creates a MultiNotifier, skipping nil entries.
func NewMultiNotifier(notifiers ...usecase.Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Notify returns the joined errors of all failed deliveries.
func (m *MultiNotifier) Notify(ctx context.Context, account *domain.Account, message string) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, account, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
