package events

import (
	"time"

	"notekit/notebooks/domain/entities"
)

const (
	NoteAddedName    = "note.added"
	NoteRetitledName = "note.retitled"
	NoteRemovedName  = "note.removed"
)

type NoteAdded struct {
	NoteID     entities.NoteID
	NotebookID entities.NotebookID
	Title      string
	OccurredAt time.Time
}

func (NoteAdded) EventName() string { return NoteAddedName }

func (e NoteAdded) EncodePayload() (map[string]any, error) {
	return map[string]any{
		"note_id":     uint64(e.NoteID),
		"notebook_id": uint64(e.NotebookID),
		"title":       e.Title,
		"occurred_at": e.OccurredAt,
	}, nil
}

func (NoteAdded) DecodePayload(payload map[string]any) (NoteAdded, error) {
	noteID, err := payloadUint64(payload, "note_id")
	if err != nil {
		return NoteAdded{}, err
	}
	notebookID, err := payloadUint64(payload, "notebook_id")
	if err != nil {
		return NoteAdded{}, err
	}
	title, err := payloadString(payload, "title")
	if err != nil {
		return NoteAdded{}, err
	}
	occurredAt, err := payloadTime(payload, "occurred_at")
	if err != nil {
		return NoteAdded{}, err
	}
	return NoteAdded{
		NoteID:     entities.NoteID(noteID),
		NotebookID: entities.NotebookID(notebookID),
		Title:      title,
		OccurredAt: occurredAt,
	}, nil
}

// NoteRetitled carries both titles so subscribers mirroring the old observer
// behavior can diff without a lookup.
type NoteRetitled struct {
	NoteID     entities.NoteID
	NotebookID entities.NotebookID
	OldTitle   string
	NewTitle   string
	OccurredAt time.Time
}

func (NoteRetitled) EventName() string { return NoteRetitledName }

func (e NoteRetitled) EncodePayload() (map[string]any, error) {
	return map[string]any{
		"note_id":     uint64(e.NoteID),
		"notebook_id": uint64(e.NotebookID),
		"old_title":   e.OldTitle,
		"new_title":   e.NewTitle,
		"occurred_at": e.OccurredAt,
	}, nil
}

func (NoteRetitled) DecodePayload(payload map[string]any) (NoteRetitled, error) {
	noteID, err := payloadUint64(payload, "note_id")
	if err != nil {
		return NoteRetitled{}, err
	}
	notebookID, err := payloadUint64(payload, "notebook_id")
	if err != nil {
		return NoteRetitled{}, err
	}
	oldTitle, err := payloadString(payload, "old_title")
	if err != nil {
		return NoteRetitled{}, err
	}
	newTitle, err := payloadString(payload, "new_title")
	if err != nil {
		return NoteRetitled{}, err
	}
	occurredAt, err := payloadTime(payload, "occurred_at")
	if err != nil {
		return NoteRetitled{}, err
	}
	return NoteRetitled{
		NoteID:     entities.NoteID(noteID),
		NotebookID: entities.NotebookID(notebookID),
		OldTitle:   oldTitle,
		NewTitle:   newTitle,
		OccurredAt: occurredAt,
	}, nil
}

type NoteRemoved struct {
	NoteID     entities.NoteID
	NotebookID entities.NotebookID
	OccurredAt time.Time
}

func (NoteRemoved) EventName() string { return NoteRemovedName }

func (e NoteRemoved) EncodePayload() (map[string]any, error) {
	return map[string]any{
		"note_id":     uint64(e.NoteID),
		"notebook_id": uint64(e.NotebookID),
		"occurred_at": e.OccurredAt,
	}, nil
}

func (NoteRemoved) DecodePayload(payload map[string]any) (NoteRemoved, error) {
	noteID, err := payloadUint64(payload, "note_id")
	if err != nil {
		return NoteRemoved{}, err
	}
	notebookID, err := payloadUint64(payload, "notebook_id")
	if err != nil {
		return NoteRemoved{}, err
	}
	occurredAt, err := payloadTime(payload, "occurred_at")
	if err != nil {
		return NoteRemoved{}, err
	}
	return NoteRemoved{
		NoteID:     entities.NoteID(noteID),
		NotebookID: entities.NotebookID(notebookID),
		OccurredAt: occurredAt,
	}, nil
}
