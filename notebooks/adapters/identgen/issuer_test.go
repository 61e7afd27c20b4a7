package identgen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekit/internal/shared/ident"
	"notekit/notebooks/adapters/memory"
	"notekit/notebooks/domain/entities"
)

func seedNotebook(t *testing.T, store *memory.Store, id entities.NotebookID) {
	t.Helper()
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateNotebook(context.Background(), entities.Notebook{
		ID: id, Title: "seeded", CreatedAt: now, UpdatedAt: now,
	}))
}

func TestNextNotebookIDSkipsTakenCandidates(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 7)

	source := ident.NewSequenceSource(7, 8)
	issuer := Issuer{
		Notebooks: store,
		Notes:     store,
		Allocator: ident.Allocator{Source: source},
	}

	id, err := issuer.NextNotebookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.NotebookID(8), id)
	assert.Equal(t, 2, source.Calls())
}

func TestIDKindsDoNotShareUniqueness(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 7)

	issuer := Issuer{
		Notebooks: store,
		Notes:     store,
		Allocator: ident.Allocator{Source: ident.NewSequenceSource(7)},
	}

	// 7 is taken as a notebook id but free as a note id.
	id, err := issuer.NextNoteID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entities.NoteID(7), id)
}

func TestNextNotebookIDExhaustsOnSaturatedSpace(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 7)

	issuer := Issuer{
		Notebooks: store,
		Notes:     store,
		Allocator: ident.Allocator{Source: ident.NewSequenceSource(7), MaxAttempts: 3},
	}

	_, err := issuer.NextNotebookID(context.Background())
	require.ErrorIs(t, err, ident.ErrSpaceExhausted)
}
