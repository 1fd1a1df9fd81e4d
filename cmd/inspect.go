package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"boardgame-sync/core/config"
	"boardgame-sync/core/logger"
	"boardgame-sync/feature/bgg"

	"github.com/spf13/cobra"
)

var inspectSanitized bool

// inspectCmd dumps catalog entries for debugging field mappings.
var inspectCmd = &cobra.Command{
	Use:   "inspect <id> [id...]",
	Short: "Print the catalog entries of one or more thing ids",
	Long: `Fetch the given thing ids and print them as JSON.

With --sanitized only "name: description" lines are printed, with the
description passed through the same cleanup the sync applies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectSanitized, "sanitized", false, "Print names with sanitized descriptions only")

	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	payloads, err := bgg.NewClient(cfg.BGG, l).Things(ctx, args)
	if err != nil {
		return err
	}

	var things []bgg.Thing
	for _, body := range payloads {
		batch, err := bgg.DecodeThings(body)
		if err != nil {
			return err
		}
		things = append(things, batch...)
	}

	var out any = things
	if inspectSanitized {
		lines := make([]string, len(things))
		for i, t := range things {
			lines[i] = fmt.Sprintf("%s: %s", t.PrimaryName(), bgg.Sanitize(t.Description))
		}
		out = lines
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
