package ports

import (
	"context"
	"time"

	"notekit/notebooks/domain/entities"
	domainevents "notekit/notebooks/domain/events"
)

// NotebookRepository is the authoritative uniqueness guard for notebook ids:
// CreateNotebook must reject a duplicate id with ErrIdentifierConflict even
// when NotebookIDTaken reported the id free a moment earlier.
type NotebookRepository interface {
	CreateNotebook(ctx context.Context, notebook entities.Notebook) error
	GetNotebook(ctx context.Context, id entities.NotebookID) (entities.Notebook, error)
	ListNotebooks(ctx context.Context) ([]entities.Notebook, error)
	// DeleteNotebook removes the notebook and every note in it, returning the
	// ids of the removed notes.
	DeleteNotebook(ctx context.Context, id entities.NotebookID) ([]entities.NoteID, error)
	NotebookIDTaken(ctx context.Context, id entities.NotebookID) (bool, error)
}

type NoteRepository interface {
	AddNote(ctx context.Context, note entities.Note) error
	GetNote(ctx context.Context, id entities.NoteID) (entities.Note, error)
	ListNotes(ctx context.Context, notebookID entities.NotebookID) ([]entities.Note, error)
	UpdateNoteTitle(ctx context.Context, id entities.NoteID, title string, updatedAt time.Time) error
	DeleteNote(ctx context.Context, id entities.NoteID) error
	NoteIDTaken(ctx context.Context, id entities.NoteID) (bool, error)
}

type IdentifierIssuer interface {
	NextNotebookID(ctx context.Context) (entities.NotebookID, error)
	NextNoteID(ctx context.Context) (entities.NoteID, error)
}

// EventPublisher announces committed mutations. Implementations must not make
// publishing a precondition of the mutation itself.
type EventPublisher interface {
	PublishNotebookProvisioned(ctx context.Context, event domainevents.NotebookProvisioned) error
	PublishNotebookRemoved(ctx context.Context, event domainevents.NotebookRemoved) error
	PublishNoteAdded(ctx context.Context, event domainevents.NoteAdded) error
	PublishNoteRetitled(ctx context.Context, event domainevents.NoteRetitled) error
	PublishNoteRemoved(ctx context.Context, event domainevents.NoteRemoved) error
}

type Clock interface {
	Now() time.Time
}
