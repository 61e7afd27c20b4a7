package commands

import (
	"context"
	"log/slog"

	"notekit/notebooks/application"
	"notekit/notebooks/domain/entities"
	domainevents "notekit/notebooks/domain/events"
	"notekit/notebooks/ports"
)

type AddNoteCommand struct {
	NotebookID entities.NotebookID
	Title      string
}

type AddNoteResult struct {
	Note entities.Note
}

type AddNoteUseCase struct {
	Notebooks ports.NotebookRepository
	Notes     ports.NoteRepository
	Issuer    ports.IdentifierIssuer
	Events    ports.EventPublisher
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc AddNoteUseCase) Execute(ctx context.Context, cmd AddNoteCommand) (AddNoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	title, err := validateTitle(cmd.Title)
	if err != nil {
		return AddNoteResult{}, err
	}

	// A note cannot outlive or predate its notebook; resolve the container
	// before allocating anything.
	notebook, err := uc.Notebooks.GetNotebook(ctx, cmd.NotebookID)
	if err != nil {
		return AddNoteResult{}, err
	}

	id, err := uc.Issuer.NextNoteID(ctx)
	if err != nil {
		return AddNoteResult{}, err
	}

	now := uc.Clock.Now().UTC()
	note := entities.Note{
		ID:         id,
		NotebookID: notebook.ID,
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Notes.AddNote(ctx, note); err != nil {
		return AddNoteResult{}, err
	}

	if publishErr := uc.Events.PublishNoteAdded(ctx, domainevents.NoteAdded{
		NoteID:     note.ID,
		NotebookID: note.NotebookID,
		Title:      note.Title,
		OccurredAt: now,
	}); publishErr != nil {
		logger.Error("note added event not published",
			"event", "note_add_publish_failed",
			"module", "notebooks",
			"layer", "application",
			"note_id", note.ID.String(),
			"error", publishErr.Error())
	}

	logger.Info("note added",
		"event", "note_added",
		"module", "notebooks",
		"layer", "application",
		"note_id", note.ID.String(),
		"notebook_id", note.NotebookID.String(),
		"title", note.Title)
	return AddNoteResult{Note: note}, nil
}
