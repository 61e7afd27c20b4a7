package queries

import (
	"context"
	"log/slog"

	"notekit/notebooks/domain/entities"
	"notekit/notebooks/ports"
)

// NotebookView is a notebook together with its notes, the shape list screens
// consume.
type NotebookView struct {
	Notebook entities.Notebook
	Notes    []entities.Note
}

type GetNotebookUseCase struct {
	Notebooks ports.NotebookRepository
	Notes     ports.NoteRepository
	Logger    *slog.Logger
}

func (uc GetNotebookUseCase) Execute(ctx context.Context, id entities.NotebookID) (NotebookView, error) {
	notebook, err := uc.Notebooks.GetNotebook(ctx, id)
	if err != nil {
		return NotebookView{}, err
	}
	notes, err := uc.Notes.ListNotes(ctx, notebook.ID)
	if err != nil {
		return NotebookView{}, err
	}
	return NotebookView{Notebook: notebook, Notes: notes}, nil
}
