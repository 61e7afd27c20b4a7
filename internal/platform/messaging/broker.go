package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/rs/xid"

	"notekit/internal/shared/events"
)

// Broker is the in-process envelope transport behind the typed event bus.
// Subscriptions are held per event name in registration order; publishing
// walks a snapshot of that order, so a subscription disposed while an
// envelope is in flight may still receive that envelope but nothing after it.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]*subscription
	logger      *slog.Logger
}

type subscription struct {
	id      string
	name    string
	deliver func(context.Context, events.Envelope)
	exec    events.Executor
	broker  *Broker
	once    sync.Once
}

// Close removes the subscription from its broker. Idempotent.
func (s *subscription) Close() error {
	s.once.Do(func() {
		s.broker.removeSubscriber(s.name, s.id)
	})
	return nil
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subscribers: make(map[string][]*subscription),
		logger:      logger,
	}
}

// Publish delivers env to every live subscription of env.Name, in the order
// the subscriptions were registered. Synchronous subscriptions run inline on
// the calling goroutine; executor-bound ones are enqueued and dropped with a
// warning when the executor refuses the work. Publishing with no subscribers
// is a successful no-op.
func (b *Broker) Publish(ctx context.Context, env events.Envelope) error {
	b.mu.RLock()
	subs := append([]*subscription(nil), b.subscribers[env.Name]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if sub.exec == nil {
			sub.deliver(ctx, env)
			continue
		}
		detached := context.WithoutCancel(ctx)
		deliver, envelope := sub.deliver, env
		if err := sub.exec.Do(func() { deliver(detached, envelope) }); err != nil {
			if b.logger != nil {
				b.logger.Warn("dropping event for slow subscriber",
					"event", "broker_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"name", env.Name,
					"event_id", env.EventID,
					"subscription_id", sub.id,
					"error", err.Error(),
				)
			}
		}
	}

	if b.logger != nil {
		b.logger.Debug("event published",
			"event", "broker_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"name", env.Name,
			"event_id", env.EventID,
			"subscribers", len(subs),
		)
	}
	return nil
}

// Subscribe registers deliver for envelopes published under name and returns
// the token that removes the registration.
func (b *Broker) Subscribe(name string, deliver func(ctx context.Context, env events.Envelope), opts ...events.SubscribeOption) (events.Token, error) {
	if name == "" {
		return nil, errors.New("event name is required")
	}
	if deliver == nil {
		return nil, errors.New("deliver callback is required")
	}

	var cfg events.SubscribeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sub := &subscription{
		id:      xid.New().String(),
		name:    name,
		deliver: deliver,
		exec:    cfg.Executor,
		broker:  b,
	}

	b.mu.Lock()
	b.subscribers[name] = append(b.subscribers[name], sub)
	b.mu.Unlock()
	return sub, nil
}

func (b *Broker) removeSubscriber(name, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[name]
	if len(items) == 0 {
		return
	}
	filtered := make([]*subscription, 0, len(items))
	for _, item := range items {
		if item.id != id {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		delete(b.subscribers, name)
		return
	}
	b.subscribers[name] = filtered
}
