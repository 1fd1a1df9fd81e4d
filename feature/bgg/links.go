package bgg

// LinkEdge is a directed cross-reference between two upstream ids.
type LinkEdge struct {
	Source   string
	Target   string
	Relation Relation
}

// LinkMap groups edges of one relation by source, keeping first-seen order.
type LinkMap struct {
	Relation Relation
	order    []string
	targets  map[string][]string
}

// NewLinkMap creates an empty map for relation.
func NewLinkMap(relation Relation) *LinkMap {
	return &LinkMap{
		Relation: relation,
		targets:  make(map[string][]string),
	}
}

// Add records an edge from source to target. Repeated edges are ignored.
func (m *LinkMap) Add(source, target string) {
	existing, ok := m.targets[source]
	if !ok {
		m.order = append(m.order, source)
	}
	for _, t := range existing {
		if t == target {
			return
		}
	}
	m.targets[source] = append(existing, target)
}

// Merge appends every edge of other.
func (m *LinkMap) Merge(other *LinkMap) {
	if other == nil {
		return
	}
	for _, source := range other.order {
		for _, target := range other.targets[source] {
			m.Add(source, target)
		}
	}
}

// Len returns the number of sources with at least one edge.
func (m *LinkMap) Len() int {
	return len(m.order)
}

// Sources returns the source ids in first-seen order.
func (m *LinkMap) Sources() []string {
	return append([]string(nil), m.order...)
}

// Targets returns the targets of source in first-seen order.
func (m *LinkMap) Targets(source string) []string {
	return append([]string(nil), m.targets[source]...)
}

// TargetIDs returns every distinct target id in first-seen order.
func (m *LinkMap) TargetIDs() []string {
	seen := make(IDSet)
	var ids []string
	for _, source := range m.order {
		for _, target := range m.targets[source] {
			if !seen.Has(target) {
				seen[target] = struct{}{}
				ids = append(ids, target)
			}
		}
	}
	return ids
}

// Edges flattens the map into edges.
func (m *LinkMap) Edges() []LinkEdge {
	var edges []LinkEdge
	for _, source := range m.order {
		for _, target := range m.targets[source] {
			edges = append(edges, LinkEdge{Source: source, Target: target, Relation: m.Relation})
		}
	}
	return edges
}
