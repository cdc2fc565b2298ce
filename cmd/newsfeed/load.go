package main

import (
	"encoding/json"
	"time"

	"newsfeed/internal/app"
	"newsfeed/internal/config"
	"newsfeed/internal/logger"

	"github.com/spf13/cobra"
)

// loadCmd загружает одну ленту и печатает ее записи в JSON.
// Ошибка загрузки возвращается как есть, с этапом и причиной.
func loadCmd() *cobra.Command {
	var (
		timeout  time.Duration
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "load <url>",
		Short: "Fetch one RSS feed and print its items as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg := config.New().App
			appCfg.FetchTimeout = timeout.String()
			log := logger.NewWithWriters(cmd.ErrOrStderr(), cmd.ErrOrStderr(), logLevel)

			feed, err := app.NewLoader(appCfg, log, nil).LoadFeed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(feed)
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "HTTP request timeout, 0 disables it")
	cmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	return cmd
}
