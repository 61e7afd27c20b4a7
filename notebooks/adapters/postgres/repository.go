package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"notekit/notebooks/domain/entities"
	domainerrors "notekit/notebooks/domain/errors"
)

// Repository stores notebooks and notes in Postgres. Identifiers are uint64
// bit-cast into BIGINT columns; the sign is meaningless in SQL, so lists are
// sorted in Go where id order matters.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&notebookModel{}, &noteModel{}); err != nil {
		return fmt.Errorf("migrate postgres schema: %w", err)
	}
	return nil
}

func (r *Repository) CreateNotebook(ctx context.Context, notebook entities.Notebook) error {
	row := notebookModelFromEntity(notebook)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdentifierConflict
		}
		return err
	}
	return nil
}

func (r *Repository) GetNotebook(ctx context.Context, id entities.NotebookID) (entities.Notebook, error) {
	var row notebookModel
	err := r.db.WithContext(ctx).
		Where("id = ?", int64(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Notebook{}, domainerrors.ErrNotebookNotFound
		}
		return entities.Notebook{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListNotebooks(ctx context.Context) ([]entities.Notebook, error) {
	var rows []notebookModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Notebook, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *Repository) DeleteNotebook(ctx context.Context, id entities.NotebookID) ([]entities.NoteID, error) {
	var removed []entities.NoteID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var noteIDs []int64
		if err := tx.Model(&noteModel{}).
			Where("notebook_id = ?", int64(id)).
			Pluck("id", &noteIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("notebook_id = ?", int64(id)).Delete(&noteModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", int64(id)).Delete(&notebookModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotebookNotFound
		}

		removed = make([]entities.NoteID, 0, len(noteIDs))
		for _, noteID := range noteIDs {
			removed = append(removed, entities.NoteID(uint64(noteID)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return removed, nil
}

func (r *Repository) NotebookIDTaken(ctx context.Context, id entities.NotebookID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notebookModel{}).
		Where("id = ?", int64(id)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) AddNote(ctx context.Context, note entities.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&notebookModel{}).
			Where("id = ?", int64(note.NotebookID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotebookNotFound
		}

		row := noteModelFromEntity(note)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrIdentifierConflict
			}
			return err
		}
		return nil
	})
}

func (r *Repository) GetNote(ctx context.Context, id entities.NoteID) (entities.Note, error) {
	var row noteModel
	err := r.db.WithContext(ctx).
		Where("id = ?", int64(id)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Note{}, domainerrors.ErrNoteNotFound
		}
		return entities.Note{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListNotes(ctx context.Context, notebookID entities.NotebookID) ([]entities.Note, error) {
	var rows []noteModel
	err := r.db.WithContext(ctx).
		Where("notebook_id = ?", int64(notebookID)).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Note, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *Repository) UpdateNoteTitle(ctx context.Context, id entities.NoteID, title string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&noteModel{}).
		Where("id = ?", int64(id)).
		Updates(map[string]any{
			"title":      title,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNoteNotFound
	}
	return nil
}

func (r *Repository) DeleteNote(ctx context.Context, id entities.NoteID) error {
	result := r.db.WithContext(ctx).Where("id = ?", int64(id)).Delete(&noteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNoteNotFound
	}
	return nil
}

func (r *Repository) NoteIDTaken(ctx context.Context, id entities.NoteID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&noteModel{}).
		Where("id = ?", int64(id)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type notebookModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Title     string    `gorm:"column:title"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (notebookModel) TableName() string {
	return "notebooks"
}

func notebookModelFromEntity(item entities.Notebook) notebookModel {
	return notebookModel{
		ID:        int64(item.ID),
		Title:     item.Title,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func (m notebookModel) toEntity() entities.Notebook {
	return entities.Notebook{
		ID:        entities.NotebookID(uint64(m.ID)),
		Title:     m.Title,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type noteModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	NotebookID int64     `gorm:"column:notebook_id;index"`
	Title      string    `gorm:"column:title"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (noteModel) TableName() string {
	return "notes"
}

func noteModelFromEntity(item entities.Note) noteModel {
	return noteModel{
		ID:         int64(item.ID),
		NotebookID: int64(item.NotebookID),
		Title:      item.Title,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func (m noteModel) toEntity() entities.Note {
	return entities.Note{
		ID:         entities.NoteID(uint64(m.ID)),
		NotebookID: entities.NotebookID(uint64(m.NotebookID)),
		Title:      m.Title,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}
