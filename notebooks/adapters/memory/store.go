package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notekit/notebooks/domain/entities"
	domainerrors "notekit/notebooks/domain/errors"
)

// Store keeps notebooks and notes in mutex-guarded maps. It is the uniqueness
// authority for both id kinds: inserts re-check existence under the write
// lock, so a stale allocator free-check can never slip a duplicate in.
type Store struct {
	mu        sync.RWMutex
	notebooks map[entities.NotebookID]entities.Notebook
	notes     map[entities.NoteID]entities.Note
}

func NewStore() *Store {
	return &Store{
		notebooks: make(map[entities.NotebookID]entities.Notebook),
		notes:     make(map[entities.NoteID]entities.Note),
	}
}

func (s *Store) CreateNotebook(_ context.Context, notebook entities.Notebook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notebooks[notebook.ID]; exists {
		return domainerrors.ErrIdentifierConflict
	}
	s.notebooks[notebook.ID] = notebook
	return nil
}

func (s *Store) GetNotebook(_ context.Context, id entities.NotebookID) (entities.Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notebook, ok := s.notebooks[id]
	if !ok {
		return entities.Notebook{}, domainerrors.ErrNotebookNotFound
	}
	return notebook, nil
}

func (s *Store) ListNotebooks(_ context.Context) ([]entities.Notebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Notebook, 0, len(s.notebooks))
	for _, notebook := range s.notebooks {
		items = append(items, notebook)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteNotebook(_ context.Context, id entities.NotebookID) ([]entities.NoteID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notebooks[id]; !ok {
		return nil, domainerrors.ErrNotebookNotFound
	}

	var removed []entities.NoteID
	for noteID, note := range s.notes {
		if note.NotebookID == id {
			removed = append(removed, noteID)
			delete(s.notes, noteID)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	delete(s.notebooks, id)
	return removed, nil
}

func (s *Store) NotebookIDTaken(_ context.Context, id entities.NotebookID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, taken := s.notebooks[id]
	return taken, nil
}

func (s *Store) AddNote(_ context.Context, note entities.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ID]; exists {
		return domainerrors.ErrIdentifierConflict
	}
	if _, ok := s.notebooks[note.NotebookID]; !ok {
		return domainerrors.ErrNotebookNotFound
	}
	s.notes[note.ID] = note
	return nil
}

func (s *Store) GetNote(_ context.Context, id entities.NoteID) (entities.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return entities.Note{}, domainerrors.ErrNoteNotFound
	}
	return note, nil
}

func (s *Store) ListNotes(_ context.Context, notebookID entities.NotebookID) ([]entities.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Note, 0)
	for _, note := range s.notes {
		if note.NotebookID == notebookID {
			items = append(items, note)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateNoteTitle(_ context.Context, id entities.NoteID, title string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return domainerrors.ErrNoteNotFound
	}
	note.Title = title
	note.UpdatedAt = updatedAt
	s.notes[id] = note
	return nil
}

func (s *Store) DeleteNote(_ context.Context, id entities.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return domainerrors.ErrNoteNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) NoteIDTaken(_ context.Context, id entities.NoteID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, taken := s.notes[id]
	return taken, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
