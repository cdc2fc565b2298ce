package main

import (
	"fmt"

	"newsfeed/internal/app"
	"newsfeed/internal/config"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic feed worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.json", "Path to the JSON config file")
	return cmd
}
