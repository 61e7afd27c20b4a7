package identgen

import (
	"context"
	"fmt"

	"notekit/internal/shared/ident"
	"notekit/notebooks/domain/entities"
	"notekit/notebooks/ports"
)

// Issuer allocates fresh ids by running the shared allocator against the
// repositories' taken-checks. Uniqueness is scoped per entity kind: a value
// in use as a notebook id is still free as a note id.
type Issuer struct {
	Notebooks ports.NotebookRepository
	Notes     ports.NoteRepository
	Allocator ident.Allocator
}

func (i Issuer) NextNotebookID(ctx context.Context) (entities.NotebookID, error) {
	value, err := i.Allocator.Allocate(ctx, func(ctx context.Context, candidate uint64) (bool, error) {
		return i.Notebooks.NotebookIDTaken(ctx, entities.NotebookID(candidate))
	})
	if err != nil {
		return 0, fmt.Errorf("allocate notebook id: %w", err)
	}
	return entities.NotebookID(value), nil
}

func (i Issuer) NextNoteID(ctx context.Context) (entities.NoteID, error) {
	value, err := i.Allocator.Allocate(ctx, func(ctx context.Context, candidate uint64) (bool, error) {
		return i.Notes.NoteIDTaken(ctx, entities.NoteID(candidate))
	})
	if err != nil {
		return 0, fmt.Errorf("allocate note id: %w", err)
	}
	return entities.NoteID(value), nil
}
