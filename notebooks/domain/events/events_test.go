package events

import (
	"testing"
	"time"

	"github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedevents "notekit/internal/shared/events"
	"notekit/notebooks/domain/entities"
)

var occurred = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func roundTrip[E sharedevents.Event[E]](t *testing.T, event E) {
	t.Helper()
	payload, err := event.EncodePayload()
	require.NoError(t, err)
	var proto E
	decoded, err := proto.DecodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestEventPayloadsRoundTrip(t *testing.T) {
	t.Run("notebook provisioned", func(t *testing.T) {
		roundTrip(t, NotebookProvisioned{
			NotebookID: 9001,
			Title:      randomdata.SillyName(),
			OccurredAt: occurred,
		})
	})
	t.Run("notebook removed", func(t *testing.T) {
		roundTrip(t, NotebookRemoved{
			NotebookID:   9001,
			RemovedNotes: []entities.NoteID{11, 12, 13},
			OccurredAt:   occurred,
		})
	})
	t.Run("notebook removed empty", func(t *testing.T) {
		roundTrip(t, NotebookRemoved{
			NotebookID: 9001,
			OccurredAt: occurred,
		})
	})
	t.Run("note added", func(t *testing.T) {
		roundTrip(t, NoteAdded{
			NoteID:     11,
			NotebookID: 9001,
			Title:      randomdata.SillyName(),
			OccurredAt: occurred,
		})
	})
	t.Run("note retitled", func(t *testing.T) {
		roundTrip(t, NoteRetitled{
			NoteID:     11,
			NotebookID: 9001,
			OldTitle:   "Groceries",
			NewTitle:   "Groceries (weekly)",
			OccurredAt: occurred,
		})
	})
	t.Run("note removed", func(t *testing.T) {
		roundTrip(t, NoteRemoved{
			NoteID:     11,
			NotebookID: 9001,
			OccurredAt: occurred,
		})
	})
}

func TestEventNamesAreStable(t *testing.T) {
	assert.Equal(t, "notebook.provisioned", NotebookProvisioned{}.EventName())
	assert.Equal(t, "notebook.removed", NotebookRemoved{}.EventName())
	assert.Equal(t, "note.added", NoteAdded{}.EventName())
	assert.Equal(t, "note.retitled", NoteRetitled{}.EventName())
	assert.Equal(t, "note.removed", NoteRemoved{}.EventName())
}

func TestDecodeRejectsMissingField(t *testing.T) {
	payload, err := NoteAdded{NoteID: 1, NotebookID: 2, Title: "x", OccurredAt: occurred}.EncodePayload()
	require.NoError(t, err)
	delete(payload, "title")

	_, err = NoteAdded{}.DecodePayload(payload)
	require.ErrorIs(t, err, sharedevents.ErrDecodePayload)
}

func TestDecodeRejectsWrongFieldType(t *testing.T) {
	payload, err := NotebookProvisioned{NotebookID: 1, Title: "x", OccurredAt: occurred}.EncodePayload()
	require.NoError(t, err)
	payload["notebook_id"] = "not-a-number"

	_, err = NotebookProvisioned{}.DecodePayload(payload)
	require.ErrorIs(t, err, sharedevents.ErrDecodePayload)
}
