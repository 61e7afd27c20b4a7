package commands

import (
	"context"
	"log/slog"

	"notekit/notebooks/application"
	"notekit/notebooks/domain/entities"
	domainevents "notekit/notebooks/domain/events"
	"notekit/notebooks/ports"
)

type RetitleNoteCommand struct {
	NoteID entities.NoteID
	Title  string
}

type RetitleNoteResult struct {
	Note entities.Note
	// Retitled is false when the requested title was already current; nothing
	// was persisted or published in that case.
	Retitled bool
}

type RetitleNoteUseCase struct {
	Notes  ports.NoteRepository
	Events ports.EventPublisher
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc RetitleNoteUseCase) Execute(ctx context.Context, cmd RetitleNoteCommand) (RetitleNoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	title, err := validateTitle(cmd.Title)
	if err != nil {
		return RetitleNoteResult{}, err
	}

	note, err := uc.Notes.GetNote(ctx, cmd.NoteID)
	if err != nil {
		return RetitleNoteResult{}, err
	}
	if note.Title == title {
		return RetitleNoteResult{Note: note}, nil
	}

	now := uc.Clock.Now().UTC()
	if err := uc.Notes.UpdateNoteTitle(ctx, note.ID, title, now); err != nil {
		return RetitleNoteResult{}, err
	}

	oldTitle := note.Title
	note.Title = title
	note.UpdatedAt = now

	if publishErr := uc.Events.PublishNoteRetitled(ctx, domainevents.NoteRetitled{
		NoteID:     note.ID,
		NotebookID: note.NotebookID,
		OldTitle:   oldTitle,
		NewTitle:   note.Title,
		OccurredAt: now,
	}); publishErr != nil {
		logger.Error("note retitled event not published",
			"event", "note_retitle_publish_failed",
			"module", "notebooks",
			"layer", "application",
			"note_id", note.ID.String(),
			"error", publishErr.Error())
	}

	logger.Info("note retitled",
		"event", "note_retitled",
		"module", "notebooks",
		"layer", "application",
		"note_id", note.ID.String(),
		"notebook_id", note.NotebookID.String(),
		"old_title", oldTitle,
		"new_title", note.Title)
	return RetitleNoteResult{Note: note, Retitled: true}, nil
}
