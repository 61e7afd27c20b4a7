package eventbus

import (
	"context"

	"notekit/internal/platform/tracing"
	sharedevents "notekit/internal/shared/events"
	domainevents "notekit/notebooks/domain/events"
)

// Publisher adapts the typed bus to the ports.EventPublisher surface, so
// application code stays free of generics and transport concerns.
type Publisher struct {
	Bus *sharedevents.Bus
}

func (p Publisher) PublishNotebookProvisioned(ctx context.Context, event domainevents.NotebookProvisioned) error {
	return publish(ctx, p.Bus, event)
}

func (p Publisher) PublishNotebookRemoved(ctx context.Context, event domainevents.NotebookRemoved) error {
	return publish(ctx, p.Bus, event)
}

func (p Publisher) PublishNoteAdded(ctx context.Context, event domainevents.NoteAdded) error {
	return publish(ctx, p.Bus, event)
}

func (p Publisher) PublishNoteRetitled(ctx context.Context, event domainevents.NoteRetitled) error {
	return publish(ctx, p.Bus, event)
}

func (p Publisher) PublishNoteRemoved(ctx context.Context, event domainevents.NoteRemoved) error {
	return publish(ctx, p.Bus, event)
}

func publish[E sharedevents.Event[E]](ctx context.Context, bus *sharedevents.Bus, event E) (err error) {
	ctx, span := tracing.StartSpan(ctx, "notebooks.publish."+event.EventName(), "PRODUCER")
	defer func() { tracing.EndSpan(span, err) }()
	return sharedevents.Publish(ctx, bus, event)
}
