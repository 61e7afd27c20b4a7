package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"notekit/internal/app/bootstrap"
	"notekit/notebooks/application/commands"
	"notekit/notebooks/application/workers"
	"notekit/notebooks/domain/entities"
)

var (
	addNotebookID uint64
	addTitle      string
	addDelay      time.Duration
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note to a notebook",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		app, err := bootstrap.Build(ctx, version)
		if err != nil {
			fatal("build app", err)
		}
		defer app.Close()

		command := commands.AddNoteCommand{
			NotebookID: entities.NotebookID(addNotebookID),
			Title:      addTitle,
		}

		var result commands.AddNoteResult
		if addDelay > 0 {
			inserter := workers.DelayedInserter{
				AddNote: app.Module.AddNote,
				Delay:   addDelay,
				Logger:  app.Logger,
			}
			result, err = inserter.Insert(ctx, command)
		} else {
			result, err = app.Module.AddNote.Execute(ctx, command)
		}
		if err != nil {
			fatal("add note", err)
		}

		fmt.Printf("note %s %q in notebook %s\n",
			result.Note.ID, result.Note.Title, result.Note.NotebookID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().Uint64Var(&addNotebookID, "notebook", 0, "Notebook identifier")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Note title")
	addCmd.Flags().DurationVar(&addDelay, "delay", 0, "Insert after this delay instead of immediately")
	_ = addCmd.MarkFlagRequired("notebook")
	_ = addCmd.MarkFlagRequired("title")
}
