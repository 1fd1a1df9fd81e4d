package cmd

import (
	"context"
	"fmt"

	"boardgame-sync/core/config"
	"boardgame-sync/core/logger"
	"boardgame-sync/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyLimit int

// historyCmd lists recorded sync runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync runs from the history database",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultListLimit, "Number of runs to show")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	store, err := openHistory(cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	runs, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		l.Info("No runs recorded yet")
		return nil
	}

	for _, r := range runs {
		l.Info("Sync run",
			zap.String("run_id", r.ID),
			zap.String("username", r.Username),
			zap.String("status", r.Status),
			zap.Time("started_at", r.StartedAt),
			zap.Duration("duration", r.Duration()),
			zap.Bool("full_resync", r.FullResync),
			zap.Bool("dry_run", r.DryRun),
			zap.Int("games_added", r.GamesAdded),
			zap.Int("games_removed", r.GamesRemoved),
			zap.Int("expansions_added", r.ExpansionsAdded),
			zap.Int("expansions_removed", r.ExpansionsRemoved),
			zap.String("error", r.Error),
		)
	}
	return nil
}
