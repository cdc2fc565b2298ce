package main

import (
	"fmt"

	"newsfeed/internal/app"
	"newsfeed/internal/config"
	"newsfeed/internal/logger"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			log, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}
			pool, err := app.OpenDB(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			pool.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.json", "Path to the JSON config file")
	return cmd
}
