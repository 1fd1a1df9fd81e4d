package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boardgame-sync/feature/collection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultListLimit is used when List is called without a positive limit.
const DefaultListLimit = 20

// Store records sync runs in the history database.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger, now: time.Now}
}

// Migrate creates or updates the sync_runs table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&SyncRun{}); err != nil {
		return fmt.Errorf("failed to migrate history: %w", err)
	}
	return nil
}

// Begin inserts a running row for a run.
func (s *Store) Begin(ctx context.Context, id, username string, opts collection.Config) (*SyncRun, error) {
	if id == "" {
		return nil, errors.New("history run without id")
	}

	run := &SyncRun{
		ID:         id,
		Username:   username,
		FullResync: opts.Reset,
		DryRun:     opts.DryRun,
		Status:     StatusRunning,
		StartedAt:  s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	s.logger.Debug("Recorded run start", zap.String("run_id", id))
	return run, nil
}

// Complete stores the outcome of a run. A non-nil runErr marks the run failed.
func (s *Store) Complete(ctx context.Context, id string, summary *collection.RunSummary, runErr error) error {
	finished := s.now().UTC()
	updates := map[string]any{
		"status":      StatusSucceeded,
		"finished_at": finished,
		"error":       "",
	}
	if runErr != nil {
		updates["status"] = StatusFailed
		updates["error"] = runErr.Error()
	}
	if summary != nil {
		updates["games_added"] = summary.Games.Added
		updates["games_removed"] = summary.Games.Removed
		updates["games_linked"] = summary.Games.Linked
		updates["expansions_added"] = summary.Expansions.Added
		updates["expansions_removed"] = summary.Expansions.Removed
		updates["expansions_linked"] = summary.Expansions.Linked
	}

	result := s.db.WithContext(ctx).Model(&SyncRun{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to record run outcome: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to record run outcome: run %s not found", id)
	}

	s.logger.Debug("Recorded run outcome", zap.String("run_id", id), zap.Any("status", updates["status"]))
	return nil
}

// List returns the most recent runs first.
func (s *Store) List(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var runs []SyncRun
	if err := s.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
