// Package reconcile computes how a destination table must change to mirror the
// upstream collection.
//
// The upstream identifier is the join key between both sides. Diff returns the
// identifiers to add (present upstream only) and to remove (present in the
// destination only); identifiers on both sides are left untouched. A full resync
// bypasses the diff so the table is rebuilt from scratch.
//
// # Plans
//
// BuildPlan wraps the diff in a ReconcilePlan: removal and creation actions, a
// summary with counters for reporting, and a dry-run marker the caller honours
// before executing anything.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan("games", currentIDs, existingIDs, reconcile.ReconcileOptions{
//	    FullResync: cfg.Sync.Reset,
//	})
//	for _, action := range plan.Actions {
//	    fmt.Println(action.Type, action.Key, action.Reason)
//	}
package reconcile
