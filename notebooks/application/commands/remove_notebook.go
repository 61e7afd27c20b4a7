package commands

import (
	"context"
	"log/slog"

	"notekit/notebooks/application"
	"notekit/notebooks/domain/entities"
	domainevents "notekit/notebooks/domain/events"
	"notekit/notebooks/ports"
)

type RemoveNotebookCommand struct {
	NotebookID entities.NotebookID
}

type RemoveNotebookResult struct {
	Notebook     entities.Notebook
	RemovedNotes []entities.NoteID
}

type RemoveNotebookUseCase struct {
	Notebooks ports.NotebookRepository
	Events    ports.EventPublisher
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc RemoveNotebookUseCase) Execute(ctx context.Context, cmd RemoveNotebookCommand) (RemoveNotebookResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	notebook, err := uc.Notebooks.GetNotebook(ctx, cmd.NotebookID)
	if err != nil {
		return RemoveNotebookResult{}, err
	}

	// The notebook is the aggregate root: its notes go down with it, in the
	// same store operation.
	removed, err := uc.Notebooks.DeleteNotebook(ctx, notebook.ID)
	if err != nil {
		return RemoveNotebookResult{}, err
	}

	now := uc.Clock.Now().UTC()
	if publishErr := uc.Events.PublishNotebookRemoved(ctx, domainevents.NotebookRemoved{
		NotebookID:   notebook.ID,
		RemovedNotes: removed,
		OccurredAt:   now,
	}); publishErr != nil {
		logger.Error("notebook removed event not published",
			"event", "notebook_remove_publish_failed",
			"module", "notebooks",
			"layer", "application",
			"notebook_id", notebook.ID.String(),
			"error", publishErr.Error())
	}

	logger.Info("notebook removed",
		"event", "notebook_removed",
		"module", "notebooks",
		"layer", "application",
		"notebook_id", notebook.ID.String(),
		"removed_notes", len(removed))
	return RemoveNotebookResult{Notebook: notebook, RemovedNotes: removed}, nil
}
