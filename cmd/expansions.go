package cmd

import (
	"context"
	"fmt"

	"boardgame-sync/core/config"
	"boardgame-sync/core/logger"
	"boardgame-sync/feature/airtable"
	"boardgame-sync/feature/bgg"
	"boardgame-sync/feature/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkExpansionsCmd lists expansions of owned games that are not in the collection.
var checkExpansionsCmd = &cobra.Command{
	Use:   "check-expansions [username]",
	Short: "List expansions of owned games that are neither owned nor preordered",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheckExpansions,
}

func init() {
	RootCmd.AddCommand(checkExpansionsCmd)
}

func runCheckExpansions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	username := cfg.BGG.Username
	if len(args) == 1 {
		username = args[0]
	}
	if username == "" {
		return fmt.Errorf("%w: bgg.username (or pass a username argument)", config.ErrMissingSetting)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	svc := collection.NewService(
		bgg.NewClient(cfg.BGG, l),
		airtable.NewClient(cfg.Airtable, l),
		collection.Options{
			Username:   username,
			Games:      collection.GamesKind(cfg.Airtable),
			Expansions: collection.ExpansionsKind(cfg.Airtable),
			Sync:       cfg.Sync,
		},
		l,
	)

	missing, err := svc.MissingExpansions(ctx, username)
	if err != nil {
		return err
	}

	l.Info("Expansion audit finished", zap.String("username", username), zap.Int("missing", len(missing)))
	for _, m := range missing {
		fmt.Fprintln(cmd.OutOrStdout(), m.String())
	}
	return nil
}
