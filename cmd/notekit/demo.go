package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"notekit/internal/app/bootstrap"
	"notekit/internal/platform/messaging"
	sharedevents "notekit/internal/shared/events"
	"notekit/notebooks/application/commands"
	"notekit/notebooks/application/workers"
	domainevents "notekit/notebooks/domain/events"
)

var demoDelay time.Duration

// demoCmd walks the whole loop: provision a notebook, add one note right
// away, schedule a second one, and print every event as it lands on the
// serial queue standing in for a UI thread.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Provision a notebook, add notes and watch the events",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap.Build(ctx, version)
		if err != nil {
			fatal("build app", err)
		}
		defer app.Close()

		delay := app.Config.DemoDelay
		if cmd.Flags().Changed("delay") {
			delay = demoDelay
		}

		subscriptions, err := subscribePrinters(app)
		if err != nil {
			fatal("subscribe printers", err)
		}
		defer func() {
			for _, sub := range subscriptions {
				_ = sub.Close()
			}
		}()

		// The queue runs on its own context: cancelling the demo must not
		// kill it before queued printers have drained.
		queueCtx, stopQueue := context.WithCancel(context.Background())
		defer stopQueue()

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			if err := app.Queue.Run(queueCtx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})

		result, err := app.Module.ProvisionNotebook.Execute(ctx, commands.ProvisionNotebookCommand{
			Title: "demo notebook",
		})
		if err != nil {
			fatal("provision notebook", err)
		}
		notebookID := result.Notebook.ID

		if _, err := app.Module.AddNote.Execute(ctx, commands.AddNoteCommand{
			NotebookID: notebookID,
			Title:      "written immediately",
		}); err != nil {
			fatal("add note", err)
		}

		group.Go(func() error {
			defer stopQueue()
			inserter := workers.DelayedInserter{
				AddNote: app.Module.AddNote,
				Delay:   delay,
				Logger:  app.Logger,
			}
			if _, err := inserter.Insert(groupCtx, commands.AddNoteCommand{
				NotebookID: notebookID,
				Title:      "written after the delay",
			}); err != nil {
				return err
			}
			return flushQueue(groupCtx, app.Queue)
		})

		if err := group.Wait(); err != nil {
			fatal("demo run", err)
		}

		view, err := app.Module.GetNotebook.Execute(ctx, notebookID)
		if err != nil {
			fatal("get notebook", err)
		}
		fmt.Printf("notebook %s %q now holds %d notes\n",
			view.Notebook.ID, view.Notebook.Title, len(view.Notes))
		for _, note := range view.Notes {
			fmt.Printf("  %s  %s\n", note.ID, note.Title)
		}
	},
}

// subscribePrinters attaches one printing handler per event type, all
// delivered through the serial queue so lines come out in publish order.
func subscribePrinters(app *bootstrap.App) ([]io.Closer, error) {
	onQueue := sharedevents.OnExecutor(app.Queue)
	var subscriptions []io.Closer

	provisioned, err := sharedevents.Subscribe[domainevents.NotebookProvisioned](app.Bus,
		func(_ context.Context, e domainevents.NotebookProvisioned) error {
			fmt.Printf("[event] notebook %s provisioned as %q\n", e.NotebookID, e.Title)
			return nil
		}, onQueue)
	if err != nil {
		return subscriptions, err
	}
	subscriptions = append(subscriptions, provisioned)

	notebookRemoved, err := sharedevents.Subscribe[domainevents.NotebookRemoved](app.Bus,
		func(_ context.Context, e domainevents.NotebookRemoved) error {
			fmt.Printf("[event] notebook %s removed along with %d notes\n", e.NotebookID, len(e.RemovedNotes))
			return nil
		}, onQueue)
	if err != nil {
		return subscriptions, err
	}
	subscriptions = append(subscriptions, notebookRemoved)

	added, err := sharedevents.Subscribe[domainevents.NoteAdded](app.Bus,
		func(_ context.Context, e domainevents.NoteAdded) error {
			fmt.Printf("[event] note %s %q added to notebook %s\n", e.NoteID, e.Title, e.NotebookID)
			return nil
		}, onQueue)
	if err != nil {
		return subscriptions, err
	}
	subscriptions = append(subscriptions, added)

	retitled, err := sharedevents.Subscribe[domainevents.NoteRetitled](app.Bus,
		func(_ context.Context, e domainevents.NoteRetitled) error {
			fmt.Printf("[event] note %s retitled %q -> %q\n", e.NoteID, e.OldTitle, e.NewTitle)
			return nil
		}, onQueue)
	if err != nil {
		return subscriptions, err
	}
	subscriptions = append(subscriptions, retitled)

	noteRemoved, err := sharedevents.Subscribe[domainevents.NoteRemoved](app.Bus,
		func(_ context.Context, e domainevents.NoteRemoved) error {
			fmt.Printf("[event] note %s removed from notebook %s\n", e.NoteID, e.NotebookID)
			return nil
		}, onQueue)
	if err != nil {
		return subscriptions, err
	}
	subscriptions = append(subscriptions, noteRemoved)

	return subscriptions, nil
}

// flushQueue enqueues a barrier task and waits for it. The queue is FIFO, so
// once the barrier runs every printer queued before it has run too.
func flushQueue(ctx context.Context, queue *messaging.SerialQueue) error {
	flushed := make(chan struct{})
	if err := queue.Do(func() { close(flushed) }); err != nil {
		return err
	}
	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().DurationVar(&demoDelay, "delay", 2*time.Second, "Delay before the scheduled note is written")
}
