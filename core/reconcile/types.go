package reconcile

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate creates a destination record for an upstream id.
	ActionCreate ActionType = "create"
	// ActionRemove removes the destination record of an upstream id.
	ActionRemove ActionType = "remove"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the upstream identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains the add and remove sets of one record kind.
type ReconcilePlan struct {
	// Kind names the record kind (e.g., "games", "expansions").
	Kind string `json:"kind"`

	// ToAdd lists upstream ids that need a destination record.
	ToAdd []string `json:"to_add"`

	// ToRemove lists upstream ids whose destination record must go.
	ToRemove []string `json:"to_remove"`

	// Actions contains planned mutation operations, removals first.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`

	// DryRun marks the plan as report-only.
	DryRun bool `json:"dry_run"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// Current is the number of distinct upstream ids.
	Current int `json:"current"`

	// Existing is the number of distinct destination ids.
	Existing int `json:"existing"`

	// Unchanged counts ids present on both sides and left untouched.
	Unchanged int `json:"unchanged"`

	// CreateActions counts planned creations.
	CreateActions int `json:"create_actions"`

	// RemoveActions counts planned removals.
	RemoveActions int `json:"remove_actions"`

	// FullResync indicates the diff was bypassed.
	FullResync bool `json:"full_resync"`
}

// ReconcileOptions controls how the plan is computed.
type ReconcileOptions struct {
	// FullResync removes every existing record and recreates every current one.
	FullResync bool

	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
