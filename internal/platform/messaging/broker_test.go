package messaging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekit/internal/shared/events"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func envelope(name, id string) events.Envelope {
	return events.Envelope{
		Name:       name,
		EventID:    id,
		Source:     "broker-test",
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{},
	}
}

func TestPublishWithNoSubscribersSucceeds(t *testing.T) {
	broker := NewBroker(quietLogger())

	require.NoError(t, broker.Publish(context.Background(), envelope("orphan", "e1")))
}

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	broker := NewBroker(quietLogger())

	var order []string
	_, err := broker.Subscribe("greeting", func(context.Context, events.Envelope) {
		order = append(order, "first")
	})
	require.NoError(t, err)
	_, err = broker.Subscribe("greeting", func(context.Context, events.Envelope) {
		order = append(order, "second")
	})
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), envelope("greeting", "e1")))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCloseRemovesSubscription(t *testing.T) {
	broker := NewBroker(quietLogger())

	calls := 0
	token, err := broker.Subscribe("greeting", func(context.Context, events.Envelope) {
		calls++
	})
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), envelope("greeting", "e1")))
	require.Equal(t, 1, calls)

	require.NoError(t, token.Close())
	require.NoError(t, broker.Publish(context.Background(), envelope("greeting", "e2")))
	assert.Equal(t, 1, calls)

	assert.NoError(t, token.Close(), "closing twice is a no-op")
}

func TestCloseDuringDeliveryAffectsLaterPublishesOnly(t *testing.T) {
	broker := NewBroker(quietLogger())

	var second events.Token
	_, err := broker.Subscribe("greeting", func(context.Context, events.Envelope) {
		_ = second.Close()
	})
	require.NoError(t, err)

	got := 0
	second, err = broker.Subscribe("greeting", func(context.Context, events.Envelope) {
		got++
	})
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), envelope("greeting", "e1")))
	assert.Equal(t, 1, got, "in-flight envelope still reaches a subscription closed mid-delivery")

	require.NoError(t, broker.Publish(context.Background(), envelope("greeting", "e2")))
	assert.Equal(t, 1, got)
}

func TestSubscribeValidatesArguments(t *testing.T) {
	broker := NewBroker(quietLogger())

	_, err := broker.Subscribe("", func(context.Context, events.Envelope) {})
	require.Error(t, err)

	_, err = broker.Subscribe("greeting", nil)
	require.Error(t, err)
}

func TestExecutorRefusalDropsOnlyThatDelivery(t *testing.T) {
	var logs bytes.Buffer
	broker := NewBroker(slog.New(slog.NewTextHandler(&logs, nil)))

	queue := NewSerialQueue(1)
	require.NoError(t, queue.Do(func() {}), "occupy the queue's only slot")

	_, err := broker.Subscribe("greeting", func(context.Context, events.Envelope) {}, events.OnExecutor(queue))
	require.NoError(t, err)

	syncGot := 0
	_, err = broker.Subscribe("greeting", func(context.Context, events.Envelope) {
		syncGot++
	})
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), envelope("greeting", "e1")))
	assert.Equal(t, 1, syncGot, "a refused enqueue must not block other subscribers")
	assert.Contains(t, logs.String(), "broker_publish_drop")
}
