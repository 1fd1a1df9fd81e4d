package reconcile

// Diff computes the ids to add (current minus existing) and to remove (existing
// minus current). Both results keep input order with duplicates collapsed to the
// first occurrence. In full resync mode the diff is bypassed: every current id is
// added and every existing id removed.
func Diff(current, existing []string, fullResync bool) (toAdd, toRemove []string) {
	if fullResync {
		return distinct(current), distinct(existing)
	}

	currentSet := toSet(current)
	existingSet := toSet(existing)

	toAdd = difference(current, existingSet)
	toRemove = difference(existing, currentSet)
	return toAdd, toRemove
}

// BuildPlan wraps Diff in an action plan for one record kind.
// Ids present on both sides are never updated, even if their upstream fields changed.
func BuildPlan(kind string, current, existing []string, opts ReconcileOptions) *ReconcilePlan {
	toAdd, toRemove := Diff(current, existing, opts.FullResync)

	plan := &ReconcilePlan{
		Kind:     kind,
		ToAdd:    toAdd,
		ToRemove: toRemove,
		Actions:  make([]Action, 0, len(toAdd)+len(toRemove)),
		DryRun:   opts.DryRun,
	}

	removeReason := "no longer in collection"
	addReason := "new in collection"
	if opts.FullResync {
		removeReason = "full resync"
		addReason = "full resync"
	}

	for _, key := range toRemove {
		plan.Actions = append(plan.Actions, Action{Type: ActionRemove, Key: key, Reason: removeReason})
	}
	for _, key := range toAdd {
		plan.Actions = append(plan.Actions, Action{Type: ActionCreate, Key: key, Reason: addReason})
	}

	currentSet := toSet(current)
	existingSet := toSet(existing)

	plan.Summary = PlanSummary{
		Current:       len(currentSet),
		Existing:      len(existingSet),
		CreateActions: len(toAdd),
		RemoveActions: len(toRemove),
		FullResync:    opts.FullResync,
	}
	if !opts.FullResync {
		for key := range currentSet {
			if _, ok := existingSet[key]; ok {
				plan.Summary.Unchanged++
			}
		}
	}

	return plan
}

// ApplyTo returns the ids a destination holding existing would hold after the plan
// runs: existing minus ToRemove, followed by ToAdd.
func (p *ReconcilePlan) ApplyTo(existing []string) []string {
	removed := toSet(p.ToRemove)

	var result []string
	seen := make(map[string]struct{})
	for _, key := range existing {
		if _, gone := removed[key]; gone {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	for _, key := range p.ToAdd {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	return result
}

// IsEmpty reports whether the plan has no actions.
func (p *ReconcilePlan) IsEmpty() bool {
	return len(p.Actions) == 0
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// difference returns the distinct members of keys absent from exclude, in order.
func difference(keys []string, exclude map[string]struct{}) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{})
	for _, key := range keys {
		if _, skip := exclude[key]; skip {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	return result
}

func distinct(keys []string) []string {
	return difference(keys, nil)
}
