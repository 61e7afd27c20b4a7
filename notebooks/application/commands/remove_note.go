package commands

import (
	"context"
	"log/slog"

	"notekit/notebooks/application"
	"notekit/notebooks/domain/entities"
	domainevents "notekit/notebooks/domain/events"
	"notekit/notebooks/ports"
)

type RemoveNoteCommand struct {
	NoteID entities.NoteID
}

type RemoveNoteResult struct {
	Note entities.Note
}

type RemoveNoteUseCase struct {
	Notes  ports.NoteRepository
	Events ports.EventPublisher
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc RemoveNoteUseCase) Execute(ctx context.Context, cmd RemoveNoteCommand) (RemoveNoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	note, err := uc.Notes.GetNote(ctx, cmd.NoteID)
	if err != nil {
		return RemoveNoteResult{}, err
	}
	if err := uc.Notes.DeleteNote(ctx, note.ID); err != nil {
		return RemoveNoteResult{}, err
	}

	now := uc.Clock.Now().UTC()
	if publishErr := uc.Events.PublishNoteRemoved(ctx, domainevents.NoteRemoved{
		NoteID:     note.ID,
		NotebookID: note.NotebookID,
		OccurredAt: now,
	}); publishErr != nil {
		logger.Error("note removed event not published",
			"event", "note_remove_publish_failed",
			"module", "notebooks",
			"layer", "application",
			"note_id", note.ID.String(),
			"error", publishErr.Error())
	}

	logger.Info("note removed",
		"event", "note_removed",
		"module", "notebooks",
		"layer", "application",
		"note_id", note.ID.String(),
		"notebook_id", note.NotebookID.String())
	return RemoveNoteResult{Note: note}, nil
}
