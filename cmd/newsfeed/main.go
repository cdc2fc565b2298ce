package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newsfeed",
		Short:        "RSS feed loader",
		Long:         "Loads RSS documents over HTTP into ordered item records, stores them in PostgreSQL and serves them over an HTTP API.",
		SilenceUsage: true,
	}
	root.AddCommand(
		serveCmd(),
		loadCmd(),
		migrateCmd(),
	)
	return root
}
