package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekit/notebooks/adapters/memory"
	"notekit/notebooks/domain/entities"
	domainerrors "notekit/notebooks/domain/errors"
	domainevents "notekit/notebooks/domain/events"
)

var now = time.Date(2026, time.May, 6, 15, 4, 5, 0, time.UTC)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

type stubIssuer struct {
	notebookID entities.NotebookID
	noteID     entities.NoteID
	err        error
}

func (s stubIssuer) NextNotebookID(context.Context) (entities.NotebookID, error) {
	return s.notebookID, s.err
}

func (s stubIssuer) NextNoteID(context.Context) (entities.NoteID, error) {
	return s.noteID, s.err
}

type recordingPublisher struct {
	provisioned      []domainevents.NotebookProvisioned
	notebooksRemoved []domainevents.NotebookRemoved
	added            []domainevents.NoteAdded
	retitled         []domainevents.NoteRetitled
	notesRemoved     []domainevents.NoteRemoved
}

func (p *recordingPublisher) PublishNotebookProvisioned(_ context.Context, event domainevents.NotebookProvisioned) error {
	p.provisioned = append(p.provisioned, event)
	return nil
}

func (p *recordingPublisher) PublishNotebookRemoved(_ context.Context, event domainevents.NotebookRemoved) error {
	p.notebooksRemoved = append(p.notebooksRemoved, event)
	return nil
}

func (p *recordingPublisher) PublishNoteAdded(_ context.Context, event domainevents.NoteAdded) error {
	p.added = append(p.added, event)
	return nil
}

func (p *recordingPublisher) PublishNoteRetitled(_ context.Context, event domainevents.NoteRetitled) error {
	p.retitled = append(p.retitled, event)
	return nil
}

func (p *recordingPublisher) PublishNoteRemoved(_ context.Context, event domainevents.NoteRemoved) error {
	p.notesRemoved = append(p.notesRemoved, event)
	return nil
}

func (p *recordingPublisher) total() int {
	return len(p.provisioned) + len(p.notebooksRemoved) + len(p.added) + len(p.retitled) + len(p.notesRemoved)
}

func seedNotebook(t *testing.T, store *memory.Store, id entities.NotebookID, title string) {
	t.Helper()
	require.NoError(t, store.CreateNotebook(context.Background(), entities.Notebook{
		ID: id, Title: title, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}))
}

func seedNote(t *testing.T, store *memory.Store, id entities.NoteID, notebookID entities.NotebookID, title string) {
	t.Helper()
	require.NoError(t, store.AddNote(context.Background(), entities.Note{
		ID: id, NotebookID: notebookID, Title: title,
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}))
}

func TestProvisionNotebookPersistsAndPublishes(t *testing.T) {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	uc := ProvisionNotebookUseCase{
		Notebooks: store,
		Issuer:    stubIssuer{notebookID: 42},
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	result, err := uc.Execute(context.Background(), ProvisionNotebookCommand{Title: "  Reading list  "})
	require.NoError(t, err)
	assert.Equal(t, entities.NotebookID(42), result.Notebook.ID)
	assert.Equal(t, "Reading list", result.Notebook.Title)
	assert.Equal(t, now, result.Notebook.CreatedAt)
	assert.Equal(t, now, result.Notebook.UpdatedAt)

	stored, err := store.GetNotebook(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, result.Notebook, stored)

	require.Len(t, pub.provisioned, 1)
	assert.Equal(t, domainevents.NotebookProvisioned{
		NotebookID: 42, Title: "Reading list", OccurredAt: now,
	}, pub.provisioned[0])
}

func TestProvisionNotebookRejectsBadTitles(t *testing.T) {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	uc := ProvisionNotebookUseCase{
		Notebooks: store,
		Issuer:    stubIssuer{notebookID: 42},
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	_, err := uc.Execute(context.Background(), ProvisionNotebookCommand{Title: "   "})
	require.ErrorIs(t, err, domainerrors.ErrTitleRequired)

	_, err = uc.Execute(context.Background(), ProvisionNotebookCommand{Title: strings.Repeat("x", entities.TitleMaxLength+1)})
	require.ErrorIs(t, err, domainerrors.ErrTitleTooLong)

	items, err := store.ListNotebooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, pub.total())
}

func TestProvisionNotebookSurfacesIssuerFailure(t *testing.T) {
	issuerErr := errors.New("space exhausted")
	pub := &recordingPublisher{}
	uc := ProvisionNotebookUseCase{
		Notebooks: memory.NewStore(),
		Issuer:    stubIssuer{err: issuerErr},
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	_, err := uc.Execute(context.Background(), ProvisionNotebookCommand{Title: "doomed"})
	require.ErrorIs(t, err, issuerErr)
	assert.Zero(t, pub.total())
}

func TestProvisionNotebookSurfacesStoreConflict(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 42, "already here")
	pub := &recordingPublisher{}
	uc := ProvisionNotebookUseCase{
		Notebooks: store,
		Issuer:    stubIssuer{notebookID: 42},
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	_, err := uc.Execute(context.Background(), ProvisionNotebookCommand{Title: "loser of the race"})
	require.ErrorIs(t, err, domainerrors.ErrIdentifierConflict)
	assert.Zero(t, pub.total())
}

func TestAddNoteRequiresExistingNotebook(t *testing.T) {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	uc := AddNoteUseCase{
		Notebooks: store,
		Notes:     store,
		Issuer:    stubIssuer{noteID: 10},
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	_, err := uc.Execute(context.Background(), AddNoteCommand{NotebookID: 404, Title: "orphan"})
	require.ErrorIs(t, err, domainerrors.ErrNotebookNotFound)

	taken, err := store.NoteIDTaken(context.Background(), 10)
	require.NoError(t, err)
	assert.False(t, taken, "nothing may be persisted")
	assert.Zero(t, pub.total(), "nothing may be published")
}

func TestAddNotePersistsAndPublishes(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 1, "inbox")
	pub := &recordingPublisher{}
	uc := AddNoteUseCase{
		Notebooks: store,
		Notes:     store,
		Issuer:    stubIssuer{noteID: 10},
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	result, err := uc.Execute(context.Background(), AddNoteCommand{NotebookID: 1, Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, entities.NoteID(10), result.Note.ID)
	assert.Equal(t, entities.NotebookID(1), result.Note.NotebookID)

	stored, err := store.GetNote(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, result.Note, stored)

	require.Len(t, pub.added, 1)
	assert.Equal(t, domainevents.NoteAdded{
		NoteID: 10, NotebookID: 1, Title: "buy milk", OccurredAt: now,
	}, pub.added[0])
}

func TestRetitleNotePublishesBothTitles(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 1, "inbox")
	seedNote(t, store, 10, 1, "draft")
	pub := &recordingPublisher{}
	uc := RetitleNoteUseCase{
		Notes:  store,
		Events: pub,
		Clock:  stubClock{now: now},
	}

	result, err := uc.Execute(context.Background(), RetitleNoteCommand{NoteID: 10, Title: "final"})
	require.NoError(t, err)
	assert.True(t, result.Retitled)
	assert.Equal(t, "final", result.Note.Title)
	assert.Equal(t, now, result.Note.UpdatedAt)

	stored, err := store.GetNote(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.Title)

	require.Len(t, pub.retitled, 1)
	assert.Equal(t, domainevents.NoteRetitled{
		NoteID: 10, NotebookID: 1, OldTitle: "draft", NewTitle: "final", OccurredAt: now,
	}, pub.retitled[0])
}

func TestRetitleNoteUnchangedTitleIsNoOp(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 1, "inbox")
	seedNote(t, store, 10, 1, "draft")
	pub := &recordingPublisher{}
	uc := RetitleNoteUseCase{
		Notes:  store,
		Events: pub,
		Clock:  stubClock{now: now},
	}

	result, err := uc.Execute(context.Background(), RetitleNoteCommand{NoteID: 10, Title: "  draft "})
	require.NoError(t, err)
	assert.False(t, result.Retitled)
	assert.Zero(t, pub.total())

	stored, err := store.GetNote(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-time.Hour), stored.UpdatedAt, "no write may happen")
}

func TestRetitleNoteMissing(t *testing.T) {
	uc := RetitleNoteUseCase{
		Notes:  memory.NewStore(),
		Events: &recordingPublisher{},
		Clock:  stubClock{now: now},
	}

	_, err := uc.Execute(context.Background(), RetitleNoteCommand{NoteID: 404, Title: "anything"})
	require.ErrorIs(t, err, domainerrors.ErrNoteNotFound)
}

func TestRemoveNoteDeletesAndPublishes(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 1, "inbox")
	seedNote(t, store, 10, 1, "done")
	pub := &recordingPublisher{}
	uc := RemoveNoteUseCase{
		Notes:  store,
		Events: pub,
		Clock:  stubClock{now: now},
	}

	result, err := uc.Execute(context.Background(), RemoveNoteCommand{NoteID: 10})
	require.NoError(t, err)
	assert.Equal(t, entities.NoteID(10), result.Note.ID)

	_, err = store.GetNote(context.Background(), 10)
	require.ErrorIs(t, err, domainerrors.ErrNoteNotFound)

	require.Len(t, pub.notesRemoved, 1)
	assert.Equal(t, domainevents.NoteRemoved{
		NoteID: 10, NotebookID: 1, OccurredAt: now,
	}, pub.notesRemoved[0])
}

func TestRemoveNotebookCascadesAndPublishes(t *testing.T) {
	store := memory.NewStore()
	seedNotebook(t, store, 1, "inbox")
	seedNotebook(t, store, 2, "archive")
	seedNote(t, store, 12, 1, "b")
	seedNote(t, store, 10, 1, "a")
	seedNote(t, store, 11, 2, "kept")
	pub := &recordingPublisher{}
	uc := RemoveNotebookUseCase{
		Notebooks: store,
		Events:    pub,
		Clock:     stubClock{now: now},
	}

	result, err := uc.Execute(context.Background(), RemoveNotebookCommand{NotebookID: 1})
	require.NoError(t, err)
	assert.Equal(t, []entities.NoteID{10, 12}, result.RemovedNotes)

	require.Len(t, pub.notebooksRemoved, 1)
	assert.Equal(t, domainevents.NotebookRemoved{
		NotebookID: 1, RemovedNotes: []entities.NoteID{10, 12}, OccurredAt: now,
	}, pub.notebooksRemoved[0])

	survivor, err := store.GetNote(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, entities.NotebookID(2), survivor.NotebookID)
}

func TestRemoveNotebookMissing(t *testing.T) {
	uc := RemoveNotebookUseCase{
		Notebooks: memory.NewStore(),
		Events:    &recordingPublisher{},
		Clock:     stubClock{now: now},
	}

	_, err := uc.Execute(context.Background(), RemoveNotebookCommand{NotebookID: 404})
	require.ErrorIs(t, err, domainerrors.ErrNotebookNotFound)
}
