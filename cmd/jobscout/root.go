package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobscout/internal/agent"
	"jobscout/internal/config"
	"jobscout/internal/domain/history"
	"jobscout/internal/domain/source"
	ashbyProvider "jobscout/internal/domain/source/providers/ashby"
	ghProvider "jobscout/internal/domain/source/providers/greenhouse"
	leverProvider "jobscout/internal/domain/source/providers/lever"
	rssProvider "jobscout/internal/domain/source/providers/rss"
	"jobscout/internal/notify"
	filestore "jobscout/internal/storage/file"
	redisstore "jobscout/internal/storage/redis"
	"jobscout/pkg/ashby"
	"jobscout/pkg/greenhouse"
	"jobscout/pkg/lever"
	"jobscout/pkg/logging"
	"jobscout/pkg/sheets"
	"jobscout/pkg/shutdown"
)

// set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig       string
	flagDryRun       bool
	flagNoFilter     bool
	flagResetHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job-board polling agent",
	Long: `jobscout polls company job boards (Greenhouse, Ashby, Lever, RSS feeds),
filters postings against keyword rules, and delivers a digest of anything
it has not seen before. One invocation is one run; schedule it externally.`,
	RunE: runAgent,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the digest instead of delivering it")
	rootCmd.Flags().BoolVar(&flagNoFilter, "no-filter", false, "bypass the keyword filter")
	rootCmd.Flags().BoolVar(&flagResetHistory, "reset-history", false, "clear the seen-set before running")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jobscout %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagDryRun {
		cfg.DryRun = true
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := shutdown.Context(cmd.Context())
	defer stop()

	repo, cleanup, err := buildHistoryRepo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer cleanup()

	hist, err := history.NewService(repo)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	svc, err := agent.NewService(
		agent.WithRegistry(registry),
		agent.WithCompanies(companies(cfg)...),
		agent.WithRules(cfg.Rules()),
		agent.WithHistory(hist),
		agent.WithNotifiers(buildNotifiers(ctx, cfg, logger)...),
		agent.WithSendEmpty(cfg.Notify.SendEmpty),
		agent.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	report, err := svc.Run(ctx, agent.RunOptions{
		NoFilter:     flagNoFilter,
		ResetHistory: flagResetHistory,
	})
	if err != nil {
		return err
	}

	if len(report.Warnings) > 0 {
		logger.Warn("run finished with warnings", "count", len(report.Warnings))
	}
	return nil
}

func buildRegistry(cfg *config.Config) (*source.Registry, error) {
	timeout := cfg.HTTPTimeoutDuration()

	gh, err := ghProvider.NewProvider(greenhouse.NewClient(greenhouse.Config{Timeout: timeout}))
	if err != nil {
		return nil, err
	}
	ab, err := ashbyProvider.NewProvider(ashby.NewClient(ashby.Config{Timeout: timeout}))
	if err != nil {
		return nil, err
	}
	lv, err := leverProvider.NewProvider(lever.NewClient(lever.Config{Timeout: timeout}))
	if err != nil {
		return nil, err
	}

	return source.NewRegistry(gh, ab, lv, rssProvider.NewProvider())
}

func companies(cfg *config.Config) []source.Company {
	out := make([]source.Company, 0, len(cfg.Companies))
	for _, c := range cfg.Companies {
		out = append(out, source.Company{
			Slug: c.Slug,
			Name: c.Name,
			Kind: c.Source,
			URL:  c.URL,
		})
	}
	return out
}

func buildHistoryRepo(ctx context.Context, cfg *config.Config) (history.Repository, func(), error) {
	if cfg.History.RedisURL != "" {
		store, err := redisstore.NewStore(ctx, redisstore.Config{URL: cfg.History.RedisURL})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	store, err := filestore.NewStore(cfg.HistoryPath())
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// buildNotifiers assembles delivery channels from config. Dry run
// prints to the console and skips everything external.
func buildNotifiers(ctx context.Context, cfg *config.Config, logger *logging.Logger) []notify.Notifier {
	if cfg.DryRun {
		logger.Info("dry run: external delivery disabled")
		return []notify.Notifier{notify.NewConsole(nil)}
	}

	var notifiers []notify.Notifier

	if cfg.SendGridAPIKey != "" && len(cfg.RecipientList()) > 0 {
		email, err := notify.NewEmail(notify.EmailConfig{
			APIKey:     cfg.SendGridAPIKey,
			From:       cfg.Notify.From,
			Recipients: cfg.RecipientList(),
		})
		if err != nil {
			logger.Warn("email notifier disabled", "err", err)
		} else {
			notifiers = append(notifiers, email)
		}
	}

	if cfg.TelegramBotToken != "" && cfg.Notify.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.Notify.TelegramChatID)
		if err != nil {
			logger.Warn("telegram notifier disabled", "err", err)
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	if cfg.Notify.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsFile != "" {
		client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredentialsFile})
		if err != nil {
			logger.Warn("sheets notifier disabled", "err", err)
		} else if sh, err := notify.NewSheets(client, cfg.Notify.SheetsSpreadsheetID, cfg.Notify.SheetsRange); err != nil {
			logger.Warn("sheets notifier disabled", "err", err)
		} else {
			notifiers = append(notifiers, sh)
		}
	}

	if len(notifiers) == 0 {
		logger.Warn("no delivery channels configured, printing to console")
		notifiers = append(notifiers, notify.NewConsole(nil))
	}

	return notifiers
}
