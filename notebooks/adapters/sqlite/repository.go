package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mattn/go-sqlite3"

	"notekit/notebooks/domain/entities"
	domainerrors "notekit/notebooks/domain/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS notebooks (
	id         INTEGER PRIMARY KEY,
	title      TEXT      NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS notes (
	id          INTEGER   PRIMARY KEY,
	notebook_id INTEGER   NOT NULL REFERENCES notebooks(id),
	title       TEXT      NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_notebook_id ON notes(notebook_id);
`

// Repository stores notebooks and notes in an embedded SQLite database.
// Identifiers are uint64 bit-cast into the signed INTEGER columns, so SQL-side
// ordering of id values is meaningless; lists are sorted in Go.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the schema. Idempotent.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return nil
}

func (r *Repository) CreateNotebook(ctx context.Context, notebook entities.Notebook) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notebooks (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		int64(notebook.ID), notebook.Title, notebook.CreatedAt.UTC(), notebook.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdentifierConflict
		}
		return fmt.Errorf("insert notebook: %w", err)
	}
	return nil
}

func (r *Repository) GetNotebook(ctx context.Context, id entities.NotebookID) (entities.Notebook, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT title, created_at, updated_at FROM notebooks WHERE id = ?`, int64(id))

	notebook := entities.Notebook{ID: id}
	err := row.Scan(&notebook.Title, &notebook.CreatedAt, &notebook.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Notebook{}, domainerrors.ErrNotebookNotFound
	}
	if err != nil {
		return entities.Notebook{}, fmt.Errorf("select notebook: %w", err)
	}
	notebook.CreatedAt = notebook.CreatedAt.UTC()
	notebook.UpdatedAt = notebook.UpdatedAt.UTC()
	return notebook, nil
}

func (r *Repository) ListNotebooks(ctx context.Context) ([]entities.Notebook, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at FROM notebooks`)
	if err != nil {
		return nil, fmt.Errorf("select notebooks: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Notebook, 0)
	for rows.Next() {
		var id int64
		var notebook entities.Notebook
		if err := rows.Scan(&id, &notebook.Title, &notebook.CreatedAt, &notebook.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan notebook: %w", err)
		}
		notebook.ID = entities.NotebookID(uint64(id))
		notebook.CreatedAt = notebook.CreatedAt.UTC()
		notebook.UpdatedAt = notebook.UpdatedAt.UTC()
		items = append(items, notebook)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notebooks: %w", err)
	}
	sortNotebooks(items)
	return items, nil
}

func (r *Repository) DeleteNotebook(ctx context.Context, id entities.NotebookID) ([]entities.NoteID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete notebook: %w", err)
	}
	defer tx.Rollback()

	// Notes go first: the foreign key forbids removing a notebook that still
	// has children.
	rows, err := tx.QueryContext(ctx, `SELECT id FROM notes WHERE notebook_id = ?`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("select notebook notes: %w", err)
	}
	var removed []entities.NoteID
	for rows.Next() {
		var noteID int64
		if err := rows.Scan(&noteID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan note id: %w", err)
		}
		removed = append(removed, entities.NoteID(uint64(noteID)))
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate note ids: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE notebook_id = ?`, int64(id)); err != nil {
		return nil, fmt.Errorf("delete notebook notes: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM notebooks WHERE id = ?`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("delete notebook: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete notebook: %w", err)
	}
	if affected == 0 {
		return nil, domainerrors.ErrNotebookNotFound
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete notebook: %w", err)
	}

	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return removed, nil
}

func (r *Repository) NotebookIDTaken(ctx context.Context, id entities.NotebookID) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM notebooks WHERE id = ?)`, int64(id)).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check notebook id: %w", err)
	}
	return taken, nil
}

func (r *Repository) AddNote(ctx context.Context, note entities.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, notebook_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		int64(note.ID), int64(note.NotebookID), note.Title, note.CreatedAt.UTC(), note.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdentifierConflict
		}
		if isForeignKeyViolation(err) {
			return domainerrors.ErrNotebookNotFound
		}
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *Repository) GetNote(ctx context.Context, id entities.NoteID) (entities.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT notebook_id, title, created_at, updated_at FROM notes WHERE id = ?`, int64(id))

	var notebookID int64
	note := entities.Note{ID: id}
	err := row.Scan(&notebookID, &note.Title, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Note{}, domainerrors.ErrNoteNotFound
	}
	if err != nil {
		return entities.Note{}, fmt.Errorf("select note: %w", err)
	}
	note.NotebookID = entities.NotebookID(uint64(notebookID))
	note.CreatedAt = note.CreatedAt.UTC()
	note.UpdatedAt = note.UpdatedAt.UTC()
	return note, nil
}

func (r *Repository) ListNotes(ctx context.Context, notebookID entities.NotebookID) ([]entities.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at FROM notes WHERE notebook_id = ?`, int64(notebookID))
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Note, 0)
	for rows.Next() {
		var id int64
		note := entities.Note{NotebookID: notebookID}
		if err := rows.Scan(&id, &note.Title, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		note.ID = entities.NoteID(uint64(id))
		note.CreatedAt = note.CreatedAt.UTC()
		note.UpdatedAt = note.UpdatedAt.UTC()
		items = append(items, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	sortNotes(items)
	return items, nil
}

func (r *Repository) UpdateNoteTitle(ctx context.Context, id entities.NoteID, title string, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, updated_at = ? WHERE id = ?`,
		title, updatedAt.UTC(), int64(id))
	if err != nil {
		return fmt.Errorf("update note title: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note title: %w", err)
	}
	if affected == 0 {
		return domainerrors.ErrNoteNotFound
	}
	return nil
}

func (r *Repository) DeleteNote(ctx context.Context, id entities.NoteID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return domainerrors.ErrNoteNotFound
	}
	return nil
}

func (r *Repository) NoteIDTaken(ctx context.Context, id entities.NoteID) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM notes WHERE id = ?)`, int64(id)).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check note id: %w", err)
	}
	return taken, nil
}

func sortNotebooks(items []entities.Notebook) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func sortNotes(items []entities.Note) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
