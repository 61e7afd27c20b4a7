package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekit/internal/app/bootstrap"
	"notekit/notebooks/domain/entities"
)

var listNotebookID uint64

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks, or one notebook's notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		app, err := bootstrap.Build(ctx, version)
		if err != nil {
			fatal("build app", err)
		}
		defer app.Close()

		if !cmd.Flags().Changed("notebook") {
			notebooks, err := app.Module.ListNotebooks.Execute(ctx)
			if err != nil {
				fatal("list notebooks", err)
			}
			for _, notebook := range notebooks {
				fmt.Printf("%s  %s\n", notebook.ID, notebook.Title)
			}
			return
		}

		view, err := app.Module.GetNotebook.Execute(ctx, entities.NotebookID(listNotebookID))
		if err != nil {
			fatal("get notebook", err)
		}
		fmt.Printf("notebook %s %q\n", view.Notebook.ID, view.Notebook.Title)
		for _, note := range view.Notes {
			fmt.Printf("  %s  %s\n", note.ID, note.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Uint64Var(&listNotebookID, "notebook", 0, "Show this notebook's notes")
}
