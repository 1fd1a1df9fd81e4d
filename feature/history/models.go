package history

import "time"

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// SyncRun is one recorded sync run.
type SyncRun struct {
	ID         string `gorm:"column:id;primaryKey;size:36"`
	Username   string `gorm:"column:username;size:100"`
	FullResync bool   `gorm:"column:full_resync"`
	DryRun     bool   `gorm:"column:dry_run"`
	Status     string `gorm:"column:status;size:16;index"`

	GamesAdded        int `gorm:"column:games_added"`
	GamesRemoved      int `gorm:"column:games_removed"`
	GamesLinked       int `gorm:"column:games_linked"`
	ExpansionsAdded   int `gorm:"column:expansions_added"`
	ExpansionsRemoved int `gorm:"column:expansions_removed"`
	ExpansionsLinked  int `gorm:"column:expansions_linked"`

	Error      string     `gorm:"column:error;type:text"`
	StartedAt  time.Time  `gorm:"column:started_at;index"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

// TableName overrides the table name.
func (SyncRun) TableName() string {
	return "sync_runs"
}

// Duration returns how long the run took, or zero while it is still running.
func (r SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
