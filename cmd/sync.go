package cmd

import (
	"context"
	"fmt"

	"boardgame-sync/core/config"
	"boardgame-sync/core/database"
	"boardgame-sync/core/logger"
	"boardgame-sync/core/reconcile"
	"boardgame-sync/core/storage"
	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
	"boardgame-sync/feature/collection"
	"boardgame-sync/feature/history"
	"boardgame-sync/feature/snapshot"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for sync command
	resetSync  bool
	dryRunSync bool
)

// syncCmd runs one collection sync.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the collection into the destination tables",
	Long: `Fetch the owned games and expansions, diff them against the destination
tables, remove stale rows and create the new ones with their links.

Examples:
  # Incremental sync
  sync

  # Show what would change without writing
  sync --dry-run

  # Delete every row and re-import the whole collection
  sync --reset`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&resetSync, "reset", false, "Recreate every destination row instead of applying the diff")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute and report the plan without writing")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("reset") {
		cfg.Sync.Reset = resetSync
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Sync.DryRun = dryRunSync
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize logger
	base, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = base.Sync() }()

	runID := uuid.NewString()
	l := logger.WithRunID(base, runID)
	l.Info("Starting collection sync",
		zap.String("username", cfg.BGG.Username),
		zap.Bool("reset", cfg.Sync.Reset),
		zap.Bool("dry_run", cfg.Sync.DryRun),
	)

	svc := collection.NewService(
		bgg.NewClient(cfg.BGG, l),
		airtable.NewClient(cfg.Airtable, l),
		collection.Options{
			RunID:             runID,
			Username:          cfg.BGG.Username,
			IncludePreordered: cfg.BGG.IncludePreordered,
			Games:             collection.GamesKind(cfg.Airtable),
			Expansions:        collection.ExpansionsKind(cfg.Airtable),
			Sync:              cfg.Sync,
		},
		l,
	)

	// Snapshots are optional; a storage outage never blocks a sync
	if cfg.Storage.Enabled {
		if archiver, err := openArchiver(ctx, cfg.Storage, runID, l); err != nil {
			l.Warn("Snapshot storage unavailable, continuing without snapshots", zap.Error(err))
		} else {
			svc.SetArchiver(archiver)
		}
	}

	// History is optional as well
	var runs *history.Store
	if cfg.Database.Enabled {
		if runs, err = openHistory(cfg.Database, l); err != nil {
			l.Warn("History database unavailable, run will not be recorded", zap.Error(err))
			runs = nil
		} else if _, err := runs.Begin(ctx, runID, cfg.BGG.Username, cfg.Sync); err != nil {
			l.Warn("Failed to record run start", zap.Error(err))
			runs = nil
		}
	}

	summary, runErr := svc.Run(ctx)

	if runs != nil {
		if err := runs.Complete(ctx, runID, summary, runErr); err != nil {
			l.Warn("Failed to record run outcome", zap.Error(err))
		}
	}

	if runErr != nil {
		return fmt.Errorf("sync failed: %w", runErr)
	}

	printSyncReport(l, summary)
	return nil
}

func openArchiver(ctx context.Context, cfg storage.Config, runID string, l *zap.Logger) (*snapshot.Archiver, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	archiver := snapshot.NewArchiver(client, cfg, runID, l)
	if err := archiver.Prepare(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return archiver, nil
}

func openHistory(cfg database.Config, l *zap.Logger) (*history.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := history.NewStore(db, l)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// printSyncReport prints the outcome of a run using logger.
func printSyncReport(l *zap.Logger, summary *collection.RunSummary) {
	for _, kind := range []collection.KindSummary{summary.Games, summary.Expansions} {
		l.Info("Sync report",
			zap.String("kind", kind.Kind),
			zap.Int("current", kind.Current),
			zap.Int("existing", kind.Existing),
			zap.Int("added", kind.Added),
			zap.Int("removed", kind.Removed),
			zap.Int("linked", kind.Linked),
		)
		if summary.DryRun && kind.Plan != nil {
			printSampleActions(l, kind.Plan)
		}
	}

	if summary.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
}

// printSampleActions logs the first planned actions of a plan.
func printSampleActions(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	maxShow := 5
	if len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for i := 0; i < maxShow; i++ {
		action := plan.Actions[i]
		l.Info("Sample action",
			zap.String("kind", plan.Kind),
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}
