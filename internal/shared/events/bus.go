package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDecodePayload classifies an envelope payload that does not match the
// shape the target event type expects. Event codecs wrap it; the bus logs the
// failure and skips only the affected subscription.
var ErrDecodePayload = errors.New("event payload decode failed")

// Token is the disposal handle a Transport returns for one registration.
type Token interface {
	Close() error
}

// Executor runs a delivery off the publishing goroutine. The in-process
// serial queue implements it; Do reports when the work cannot be accepted.
type Executor interface {
	Do(fn func()) error
}

// SubscribeConfig is assembled from SubscribeOption values by the transport.
type SubscribeConfig struct {
	// Executor, when set, receives every delivery for the subscription
	// instead of the publisher's goroutine.
	Executor Executor
}

// SubscribeOption configures one subscription at registration time.
type SubscribeOption func(*SubscribeConfig)

// OnExecutor marshals the subscription's deliveries onto exec. Without it,
// handlers run synchronously on the publishing goroutine.
func OnExecutor(exec Executor) SubscribeOption {
	return func(cfg *SubscribeConfig) {
		cfg.Executor = exec
	}
}

// Transport carries envelopes between publishers and named subscriptions.
// Publishing to a name nobody subscribed to is a successful no-op. Subscribers
// registered on the same name are delivered to in registration order.
type Transport interface {
	Publish(ctx context.Context, env Envelope) error
	Subscribe(name string, deliver func(ctx context.Context, env Envelope), opts ...SubscribeOption) (Token, error)
}

// Bus stamps typed events into envelopes and routes them through a Transport.
// It owns the envelope metadata (event id, source, occurred-at); the event
// types own their payload codecs.
type Bus struct {
	transport Transport
	source    string
	newID     func() string
	clock     func() time.Time
	logger    *slog.Logger
}

// NewBus builds a bus publishing on behalf of source. A nil logger falls back
// to slog.Default.
func NewBus(transport Transport, source string, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		transport: transport,
		source:    source,
		newID:     uuid.NewString,
		clock:     time.Now,
		logger:    logger,
	}
}

// Publish encodes event and hands the envelope to the transport. With no live
// subscription for the event's name this is a successful no-op.
func Publish[E Event[E]](ctx context.Context, bus *Bus, event E) error {
	payload, err := event.EncodePayload()
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event.EventName(), err)
	}
	env := Envelope{
		Name:       event.EventName(),
		EventID:    bus.newID(),
		Source:     bus.source,
		OccurredAt: bus.clock().UTC(),
		Payload:    payload,
	}
	return bus.transport.Publish(ctx, env)
}

// Subscribe registers handler for the event type's name and returns its
// Subscription. A handler error or panic is logged and never interrupts
// delivery to other subscriptions of the same envelope; a payload that fails
// to decode skips this subscription only.
func Subscribe[E Event[E]](bus *Bus, handler func(ctx context.Context, event E) error, opts ...SubscribeOption) (*Subscription, error) {
	if handler == nil {
		return nil, errors.New("event handler is required")
	}
	var proto E
	name := proto.EventName()

	deliver := func(ctx context.Context, env Envelope) {
		defer func() {
			if r := recover(); r != nil {
				bus.logger.Error("event handler panicked",
					"event", "bus_handler_panic",
					"module", "internal/shared/events",
					"layer", "platform",
					"name", env.Name,
					"event_id", env.EventID,
					"panic", fmt.Sprint(r))
			}
		}()
		decoded, err := proto.DecodePayload(env.Payload)
		if err != nil {
			bus.logger.Warn("skipping subscription for undecodable payload",
				"event", "bus_payload_decode_failed",
				"module", "internal/shared/events",
				"layer", "platform",
				"name", env.Name,
				"event_id", env.EventID,
				"error", err.Error())
			return
		}
		if err := handler(ctx, decoded); err != nil {
			bus.logger.Error("event handler failed",
				"event", "bus_handler_failed",
				"module", "internal/shared/events",
				"layer", "platform",
				"name", env.Name,
				"event_id", env.EventID,
				"error", err.Error())
		}
	}

	token, err := bus.transport.Subscribe(name, deliver, opts...)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", name, err)
	}
	return &Subscription{token: token}, nil
}

// Subscription is one live handler registration. Closing it removes the
// registration from the transport; a closed subscription receives nothing
// further, and closing again is a no-op returning the first result.
type Subscription struct {
	once  sync.Once
	token Token
	err   error
}

// Close disposes the subscription. Safe to call any number of times.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		s.err = s.token.Close()
	})
	return s.err
}
