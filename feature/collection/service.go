package collection

import (
	"context"
	"fmt"

	"boardgame-sync/core/reconcile"
	"boardgame-sync/feature/bgg"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a sync service.
type Options struct {
	// RunID tags logs and snapshots. A random id is generated when empty.
	RunID string
	// Username is the collection owner.
	Username string
	// IncludePreordered counts preordered expansions as part of the collection.
	IncludePreordered bool
	// Games and Expansions describe the two destination tables.
	Games      RecordKind
	Expansions RecordKind
	// Sync holds the run switches and chunk size.
	Sync Config
}

// KindSummary reports what a run did to one table.
type KindSummary struct {
	Kind     string `json:"kind"`
	Current  int    `json:"current"`
	Existing int    `json:"existing"`
	Added    int    `json:"added"`
	Removed  int    `json:"removed"`
	Linked   int    `json:"linked"`

	Plan *reconcile.ReconcilePlan `json:"-"`
}

// RunSummary is the outcome of a sync run.
type RunSummary struct {
	RunID      string      `json:"run_id"`
	Username   string      `json:"username"`
	FullResync bool        `json:"full_resync"`
	DryRun     bool        `json:"dry_run"`
	Games      KindSummary `json:"games"`
	Expansions KindSummary `json:"expansions"`
}

// Service synchronizes a catalog collection into the destination tables.
type Service struct {
	catalog  Catalog
	writer   *Writer
	archiver Archiver
	opts     Options
	logger   *zap.Logger
}

// NewService creates a sync service.
func NewService(catalog Catalog, store Store, opts Options, logger *zap.Logger) *Service {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	return &Service{
		catalog: catalog,
		writer:  NewWriter(store, opts.Sync.ChunkSize, logger),
		opts:    opts,
		logger:  logger,
	}
}

// SetArchiver enables raw payload snapshots.
func (s *Service) SetArchiver(a Archiver) {
	s.archiver = a
}

// RunID returns the id of the run.
func (s *Service) RunID() string {
	return s.opts.RunID
}

// Run performs one sync: collections are fetched and diffed against the
// destination, stale rows are removed, then new games and new expansions are
// created and linked. The first failure aborts the run; completed mutations stay.
func (s *Service) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:      s.opts.RunID,
		Username:   s.opts.Username,
		FullResync: s.opts.Sync.Reset,
		DryRun:     s.opts.Sync.DryRun,
		Games:      KindSummary{Kind: s.opts.Games.Name},
		Expansions: KindSummary{Kind: s.opts.Expansions.Name},
	}

	s.logger.Info("Fetching collection", zap.String("username", s.opts.Username))
	gameIDs, err := s.collectionIDs(ctx, "collection-games", bgg.GamesQuery(s.opts.Username))
	if err != nil {
		return summary, err
	}
	expansionIDs, err := s.expansionIDs(ctx, s.opts.IncludePreordered)
	if err != nil {
		return summary, err
	}
	s.logger.Info("Collection fetched",
		zap.Int("games", len(gameIDs)),
		zap.Int("expansions", len(expansionIDs)),
	)

	existingGames, err := s.writer.ExistingRecords(ctx, s.opts.Games.Table)
	if err != nil {
		return summary, err
	}
	existingExpansions, err := s.writer.ExistingRecords(ctx, s.opts.Expansions.Table)
	if err != nil {
		return summary, err
	}
	s.logger.Info("Destination listed",
		zap.Int("games", len(existingGames)),
		zap.Int("expansions", len(existingExpansions)),
	)

	planOpts := reconcile.ReconcileOptions{FullResync: s.opts.Sync.Reset, DryRun: s.opts.Sync.DryRun}
	gamePlan := reconcile.BuildPlan(s.opts.Games.Name, gameIDs, rowIDs(existingGames), planOpts)
	expansionPlan := reconcile.BuildPlan(s.opts.Expansions.Name, expansionIDs, rowIDs(existingExpansions), planOpts)

	summary.Games.Plan = gamePlan
	summary.Games.Current = gamePlan.Summary.Current
	summary.Games.Existing = gamePlan.Summary.Existing
	summary.Expansions.Plan = expansionPlan
	summary.Expansions.Current = expansionPlan.Summary.Current
	summary.Expansions.Existing = expansionPlan.Summary.Existing

	if s.opts.Sync.Reset {
		s.logger.Info("Full resync requested, every destination row will be recreated")
	}
	s.logPlan(gamePlan)
	s.logPlan(expansionPlan)

	if s.opts.Sync.DryRun {
		s.logger.Info("Dry-run mode: no changes were made")
		return summary, nil
	}

	if summary.Games.Removed, err = s.writer.RemoveRecords(ctx, s.opts.Games.Table, handlesFor(existingGames, gamePlan.ToRemove)); err != nil {
		return summary, err
	}
	if summary.Expansions.Removed, err = s.writer.RemoveRecords(ctx, s.opts.Expansions.Table, handlesFor(existingExpansions, expansionPlan.ToRemove)); err != nil {
		return summary, err
	}

	owned := bgg.NewIDSet(gameIDs...)
	if err := s.addKind(ctx, s.opts.Games, gamePlan.ToAdd, owned, &summary.Games); err != nil {
		return summary, err
	}
	if err := s.addKind(ctx, s.opts.Expansions, expansionPlan.ToAdd, owned, &summary.Expansions); err != nil {
		return summary, err
	}

	s.logger.Info("Sync finished",
		zap.Int("games_added", summary.Games.Added),
		zap.Int("games_removed", summary.Games.Removed),
		zap.Int("expansions_added", summary.Expansions.Added),
		zap.Int("expansions_removed", summary.Expansions.Removed),
	)
	return summary, nil
}

// addKind fetches, creates and links the new rows of one kind.
func (s *Service) addKind(ctx context.Context, kind RecordKind, ids []string, owned bgg.IDSet, out *KindSummary) error {
	if len(ids) == 0 {
		return nil
	}

	log := s.logger.With(zap.String("kind", kind.Name))
	log.Info("Fetching catalog entries", zap.Int("count", len(ids)))

	payloads, err := s.catalog.Things(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", kind.Name, err)
	}

	var records []bgg.ThingRecord
	links := bgg.NewLinkMap(kind.Relation)
	for i, body := range payloads {
		s.archive(ctx, fmt.Sprintf("things-%s-%03d", kind.Name, i+1), body)

		batch, batchLinks, err := bgg.ParseThings(body, kind.Relation, owned)
		if err != nil {
			return fmt.Errorf("failed to parse %s batch %d: %w", kind.Name, i+1, err)
		}
		records = append(records, batch...)
		links.Merge(batchLinks)
	}

	if out.Added, err = s.writer.CreateRecords(ctx, kind.Table, records); err != nil {
		return err
	}
	if out.Linked, err = s.writer.PatchLinks(ctx, kind, links); err != nil {
		return err
	}

	log.Info("Created catalog entries", zap.Int("created", out.Added), zap.Int("linked", out.Linked))
	return nil
}

func (s *Service) collectionIDs(ctx context.Context, name string, query bgg.CollectionQuery) ([]string, error) {
	body, err := s.catalog.Collection(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	s.archive(ctx, name, body)

	items, err := bgg.ParseCollection(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return bgg.IDs(items), nil
}

// expansionIDs returns the owned expansions, followed by the preordered ones when requested.
func (s *Service) expansionIDs(ctx context.Context, includePreordered bool) ([]string, error) {
	ids, err := s.collectionIDs(ctx, "collection-expansions", bgg.ExpansionsQuery(s.opts.Username))
	if err != nil {
		return nil, err
	}
	if !includePreordered {
		return ids, nil
	}

	preordered, err := s.collectionIDs(ctx, "collection-preordered", bgg.PreorderedExpansionsQuery(s.opts.Username))
	if err != nil {
		return nil, err
	}
	return union(ids, preordered), nil
}

func (s *Service) archive(ctx context.Context, name string, body []byte) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Save(ctx, name, body); err != nil {
		s.logger.Warn("Failed to archive payload", zap.String("name", name), zap.Error(err))
	}
}

func (s *Service) logPlan(plan *reconcile.ReconcilePlan) {
	s.logger.Info("Reconciliation plan",
		zap.String("kind", plan.Kind),
		zap.Int("current", plan.Summary.Current),
		zap.Int("existing", plan.Summary.Existing),
		zap.Int("unchanged", plan.Summary.Unchanged),
		zap.Int("to_add", plan.Summary.CreateActions),
		zap.Int("to_remove", plan.Summary.RemoveActions),
		zap.Bool("full_resync", plan.Summary.FullResync),
	)
}

func rowIDs(rows []ExistingRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

// handlesFor returns the handle of every row whose id is in ids.
func handlesFor(rows []ExistingRow, ids []string) []string {
	remove := bgg.NewIDSet(ids...)
	var handles []string
	for _, r := range rows {
		if remove.Has(r.ID) {
			handles = append(handles, r.Handle)
		}
	}
	return handles
}
