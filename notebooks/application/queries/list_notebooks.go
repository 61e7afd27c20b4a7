package queries

import (
	"context"
	"log/slog"

	"notekit/notebooks/application"
	"notekit/notebooks/domain/entities"
	"notekit/notebooks/ports"
)

type ListNotebooksUseCase struct {
	Notebooks ports.NotebookRepository
	Logger    *slog.Logger
}

func (uc ListNotebooksUseCase) Execute(ctx context.Context) ([]entities.Notebook, error) {
	logger := application.ResolveLogger(uc.Logger)
	notebooks, err := uc.Notebooks.ListNotebooks(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("notebooks listed",
		"event", "notebooks_listed",
		"module", "notebooks",
		"layer", "application",
		"count", len(notebooks))
	return notebooks, nil
}
