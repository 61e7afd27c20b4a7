package workers

import (
	"context"
	"log/slog"
	"time"

	"notekit/notebooks/application"
	"notekit/notebooks/application/commands"
)

// DelayedInserter runs an AddNote after a fixed delay. It blocks until the
// timer fires or ctx is cancelled, so callers run it on its own goroutine
// (the demo drives it through an errgroup).
type DelayedInserter struct {
	AddNote commands.AddNoteUseCase
	Delay   time.Duration
	Logger  *slog.Logger
}

func (w DelayedInserter) Insert(ctx context.Context, cmd commands.AddNoteCommand) (commands.AddNoteResult, error) {
	logger := application.ResolveLogger(w.Logger)

	logger.Debug("delayed insert scheduled",
		"event", "delayed_insert_scheduled",
		"module", "notebooks",
		"layer", "worker",
		"notebook_id", cmd.NotebookID.String(),
		"delay", w.Delay.String())

	timer := time.NewTimer(w.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		logger.Warn("delayed insert cancelled",
			"event", "delayed_insert_cancelled",
			"module", "notebooks",
			"layer", "worker",
			"notebook_id", cmd.NotebookID.String())
		return commands.AddNoteResult{}, ctx.Err()
	case <-timer.C:
	}

	result, err := w.AddNote.Execute(ctx, cmd)
	if err != nil {
		logger.Error("delayed insert failed",
			"event", "delayed_insert_failed",
			"module", "notebooks",
			"layer", "worker",
			"notebook_id", cmd.NotebookID.String(),
			"error", err.Error())
		return commands.AddNoteResult{}, err
	}

	logger.Info("delayed insert completed",
		"event", "delayed_insert_completed",
		"module", "notebooks",
		"layer", "worker",
		"note_id", result.Note.ID.String(),
		"notebook_id", result.Note.NotebookID.String())
	return result, nil
}
