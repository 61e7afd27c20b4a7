package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekit/internal/platform/messaging"
	sharedevents "notekit/internal/shared/events"
	domainevents "notekit/notebooks/domain/events"
)

func TestPublisherRoutesTypedEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := sharedevents.NewBus(messaging.NewBroker(logger), "eventbus-test", logger)
	publisher := Publisher{Bus: bus}

	var added []domainevents.NoteAdded
	_, err := sharedevents.Subscribe(bus, func(_ context.Context, e domainevents.NoteAdded) error {
		added = append(added, e)
		return nil
	})
	require.NoError(t, err)

	var removed []domainevents.NotebookRemoved
	_, err = sharedevents.Subscribe(bus, func(_ context.Context, e domainevents.NotebookRemoved) error {
		removed = append(removed, e)
		return nil
	})
	require.NoError(t, err)

	occurred := time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, publisher.PublishNoteAdded(context.Background(), domainevents.NoteAdded{
		NoteID: 10, NotebookID: 1, Title: "milk", OccurredAt: occurred,
	}))

	require.Len(t, added, 1)
	assert.Equal(t, domainevents.NoteAdded{NoteID: 10, NotebookID: 1, Title: "milk", OccurredAt: occurred}, added[0])
	assert.Empty(t, removed, "other event types stay untouched")
}
