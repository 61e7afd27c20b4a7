package notebooks

import (
	"log/slog"

	"notekit/internal/platform/messaging"
	sharedevents "notekit/internal/shared/events"
	"notekit/internal/shared/ident"
	"notekit/notebooks/adapters/eventbus"
	"notekit/notebooks/adapters/identgen"
	"notekit/notebooks/adapters/memory"
	"notekit/notebooks/application/commands"
	"notekit/notebooks/application/queries"
	"notekit/notebooks/ports"
)

type Module struct {
	ProvisionNotebook commands.ProvisionNotebookUseCase
	AddNote           commands.AddNoteUseCase
	RetitleNote       commands.RetitleNoteUseCase
	RemoveNote        commands.RemoveNoteUseCase
	RemoveNotebook    commands.RemoveNotebookUseCase
	GetNotebook       queries.GetNotebookUseCase
	ListNotebooks     queries.ListNotebooksUseCase

	// Store and Bus are populated by NewInMemoryModule for the demo and tests.
	Store *memory.Store
	Bus   *sharedevents.Bus
}

type Dependencies struct {
	Notebooks ports.NotebookRepository
	Notes     ports.NoteRepository
	Issuer    ports.IdentifierIssuer
	Events    ports.EventPublisher
	Clock     ports.Clock
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		ProvisionNotebook: commands.ProvisionNotebookUseCase{
			Notebooks: deps.Notebooks,
			Issuer:    deps.Issuer,
			Events:    deps.Events,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		AddNote: commands.AddNoteUseCase{
			Notebooks: deps.Notebooks,
			Notes:     deps.Notes,
			Issuer:    deps.Issuer,
			Events:    deps.Events,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		RetitleNote: commands.RetitleNoteUseCase{
			Notes:  deps.Notes,
			Events: deps.Events,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		RemoveNote: commands.RemoveNoteUseCase{
			Notes:  deps.Notes,
			Events: deps.Events,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		RemoveNotebook: commands.RemoveNotebookUseCase{
			Notebooks: deps.Notebooks,
			Events:    deps.Events,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		GetNotebook: queries.GetNotebookUseCase{
			Notebooks: deps.Notebooks,
			Notes:     deps.Notes,
			Logger:    deps.Logger,
		},
		ListNotebooks: queries.ListNotebooksUseCase{
			Notebooks: deps.Notebooks,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store, the shared
// random allocator, and an in-process bus. The demo and most tests start here.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	bus := sharedevents.NewBus(messaging.NewBroker(logger), "notekit", logger)
	module := NewModule(Dependencies{
		Notebooks: store,
		Notes:     store,
		Issuer: identgen.Issuer{
			Notebooks: store,
			Notes:     store,
			Allocator: ident.Allocator{Source: ident.RandomSource{}},
		},
		Events: eventbus.Publisher{Bus: bus},
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	module.Bus = bus
	return module
}
