package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekit/internal/app/bootstrap"
	"notekit/notebooks/application/commands"
)

var provisionTitle string

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision a new notebook",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		app, err := bootstrap.Build(ctx, version)
		if err != nil {
			fatal("build app", err)
		}
		defer app.Close()

		result, err := app.Module.ProvisionNotebook.Execute(ctx, commands.ProvisionNotebookCommand{
			Title: provisionTitle,
		})
		if err != nil {
			fatal("provision notebook", err)
		}

		fmt.Printf("notebook %s %q\n", result.Notebook.ID, result.Notebook.Title)
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
	provisionCmd.Flags().StringVar(&provisionTitle, "title", "", "Notebook title")
	_ = provisionCmd.MarkFlagRequired("title")
}
