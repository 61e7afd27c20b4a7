package events

import (
	"time"

	"notekit/notebooks/domain/entities"
)

const (
	NotebookProvisionedName = "notebook.provisioned"
	NotebookRemovedName     = "notebook.removed"
)

// NotebookProvisioned announces a notebook that was created and registered
// with the store.
type NotebookProvisioned struct {
	NotebookID entities.NotebookID
	Title      string
	OccurredAt time.Time
}

func (NotebookProvisioned) EventName() string { return NotebookProvisionedName }

func (e NotebookProvisioned) EncodePayload() (map[string]any, error) {
	return map[string]any{
		"notebook_id": uint64(e.NotebookID),
		"title":       e.Title,
		"occurred_at": e.OccurredAt,
	}, nil
}

func (NotebookProvisioned) DecodePayload(payload map[string]any) (NotebookProvisioned, error) {
	notebookID, err := payloadUint64(payload, "notebook_id")
	if err != nil {
		return NotebookProvisioned{}, err
	}
	title, err := payloadString(payload, "title")
	if err != nil {
		return NotebookProvisioned{}, err
	}
	occurredAt, err := payloadTime(payload, "occurred_at")
	if err != nil {
		return NotebookProvisioned{}, err
	}
	return NotebookProvisioned{
		NotebookID: entities.NotebookID(notebookID),
		Title:      title,
		OccurredAt: occurredAt,
	}, nil
}

// NotebookRemoved announces a notebook removal, including the ids of the
// notes that went down with it.
type NotebookRemoved struct {
	NotebookID   entities.NotebookID
	RemovedNotes []entities.NoteID
	OccurredAt   time.Time
}

func (NotebookRemoved) EventName() string { return NotebookRemovedName }

func (e NotebookRemoved) EncodePayload() (map[string]any, error) {
	removed := make([]uint64, 0, len(e.RemovedNotes))
	for _, id := range e.RemovedNotes {
		removed = append(removed, uint64(id))
	}
	return map[string]any{
		"notebook_id":   uint64(e.NotebookID),
		"removed_notes": removed,
		"occurred_at":   e.OccurredAt,
	}, nil
}

func (NotebookRemoved) DecodePayload(payload map[string]any) (NotebookRemoved, error) {
	notebookID, err := payloadUint64(payload, "notebook_id")
	if err != nil {
		return NotebookRemoved{}, err
	}
	removedRaw, err := payloadUint64Slice(payload, "removed_notes")
	if err != nil {
		return NotebookRemoved{}, err
	}
	occurredAt, err := payloadTime(payload, "occurred_at")
	if err != nil {
		return NotebookRemoved{}, err
	}
	var removed []entities.NoteID
	if len(removedRaw) > 0 {
		removed = make([]entities.NoteID, 0, len(removedRaw))
		for _, id := range removedRaw {
			removed = append(removed, entities.NoteID(id))
		}
	}
	return NotebookRemoved{
		NotebookID:   entities.NotebookID(notebookID),
		RemovedNotes: removed,
		OccurredAt:   occurredAt,
	}, nil
}
