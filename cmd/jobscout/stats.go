package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobscout/internal/config"
	"jobscout/internal/domain/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show seen-set statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		ctx := cmd.Context()
		repo, cleanup, err := buildHistoryRepo(ctx, cfg)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer cleanup()

		hist, err := history.NewService(repo)
		if err != nil {
			return err
		}
		if err := hist.Load(ctx); err != nil {
			return fmt.Errorf("reading seen-set: %w", err)
		}

		location := cfg.HistoryPath()
		if cfg.History.RedisURL != "" {
			location = cfg.History.RedisURL
		}

		fmt.Printf("Store: %s\n", location)
		fmt.Printf("Seen postings: %d\n", hist.Len())
		return nil
	},
}
