package commands

import (
	"context"
	"log/slog"

	"notekit/internal/platform/tracing"
	"notekit/notebooks/application"
	"notekit/notebooks/domain/entities"
	domainevents "notekit/notebooks/domain/events"
	"notekit/notebooks/ports"
)

type ProvisionNotebookCommand struct {
	Title string
}

type ProvisionNotebookResult struct {
	Notebook entities.Notebook
}

type ProvisionNotebookUseCase struct {
	Notebooks ports.NotebookRepository
	Issuer    ports.IdentifierIssuer
	Events    ports.EventPublisher
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc ProvisionNotebookUseCase) Execute(ctx context.Context, cmd ProvisionNotebookCommand) (result ProvisionNotebookResult, err error) {
	logger := application.ResolveLogger(uc.Logger)
	ctx, span := tracing.StartSpan(ctx, "notebooks.provision_notebook", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	title, err := validateTitle(cmd.Title)
	if err != nil {
		return ProvisionNotebookResult{}, err
	}

	id, err := uc.Issuer.NextNotebookID(ctx)
	if err != nil {
		return ProvisionNotebookResult{}, err
	}

	now := uc.Clock.Now().UTC()
	notebook := entities.Notebook{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The store constraint stays authoritative: a racing provision that won
	// the same id surfaces here as ErrIdentifierConflict.
	if err = uc.Notebooks.CreateNotebook(ctx, notebook); err != nil {
		return ProvisionNotebookResult{}, err
	}

	if publishErr := uc.Events.PublishNotebookProvisioned(ctx, domainevents.NotebookProvisioned{
		NotebookID: notebook.ID,
		Title:      notebook.Title,
		OccurredAt: now,
	}); publishErr != nil {
		logger.Error("notebook provisioned event not published",
			"event", "notebook_provision_publish_failed",
			"module", "notebooks",
			"layer", "application",
			"notebook_id", notebook.ID.String(),
			"error", publishErr.Error())
	}

	logger.Info("notebook provisioned",
		"event", "notebook_provisioned",
		"module", "notebooks",
		"layer", "application",
		"notebook_id", notebook.ID.String(),
		"title", notebook.Title)
	return ProvisionNotebookResult{Notebook: notebook}, nil
}
