package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Replace the tool table from a CSV file",
	Long:  `Replace every tool with the rows of a CSV file. Without an argument the configured default CSV is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		path := app.Config.DefaultCSVPath()
		if len(args) == 1 {
			path = args[0]
		}

		tools, err := app.Importer.ImportFile(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully loaded %d tools from %s\n", len(tools), path)
		return nil
	},
}
