package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiNotifier_DeliversToAll(t *testing.T) {
	first := &flakyNotifier{}
	second := &flakyNotifier{}
	m := NewMultiNotifier(first, nil, second)

	err := m.Notify(context.Background(), newAccount(t, "A"), "credited 5 from B")

	assert.NoError(t, err)
	assert.Equal(t, []string{"A: credited 5 from B"}, first.messages)
	assert.Equal(t, []string{"A: credited 5 from B"}, second.messages)
}

func TestMultiNotifier_FailureDoesNotStopOthers(t *testing.T) {
	broken := &flakyNotifier{failures: 1}
	healthy := &flakyNotifier{}
	m := NewMultiNotifier(broken, healthy)

	err := m.Notify(context.Background(), newAccount(t, "A"), "msg")

	assert.True(t, errors.Is(err, errDownstream))
	assert.Equal(t, 1, healthy.Calls())
}

func TestMultiNotifier_Empty(t *testing.T) {
	assert.NoError(t, NewMultiNotifier().Notify(context.Background(), newAccount(t, "A"), "msg"))
}
