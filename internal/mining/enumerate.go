package mining

// adjacencySource abstracts "within-radius neighbors of a given type" so
// the clique-extension algorithm below can run unmodified over the fine
// NeighborGraph (InstanceEnumerator) and over a CoarseGrid's adjacency
// (CoarsePruner) — the coarse pruner reuses the identical clique search,
// just against coarse nodes instead of fine instances.
type adjacencySource interface {
	Neighbors(id int, t TypeID) []int
}

// enumerateCliques finds every instance of pattern: a tuple of ids, one
// per pattern.Types entry in order, such that every already-placed member
// is a neighbor (per adj) of every later member. The search seeds the
// candidate set for each new type from nil (unset), takes the first
// placed member's neighbor set while it is still nil, and narrows it by
// intersecting in one more neighbor set per later placed member; it
// never reads the first placed member's neighbor set as an implicit
// initial value through any path other than that same nil-seed/first-
// intersect step, so a pattern whose first member happens to have zero
// recorded neighbors is pruned exactly like any other empty intersection,
// not silently treated as "no constraint yet".
func enumerateCliques(pattern Pattern, firstTypeInstances []int, adj adjacencySource, cap int) ([]PatternInstance, error) {
	types := pattern.Types
	if len(types) < 2 {
		return nil, InvalidInput("pattern must have at least 2 types, got %d", len(types))
	}

	var out []PatternInstance
	partial := make([]int, 0, len(types))

	var extend func(depth int) error
	extend = func(depth int) error {
		if depth == len(types) {
			if cap > 0 && len(out)+1 > cap {
				return ResourceExhaustion(pattern, cap)
			}
			instance := make(PatternInstance, len(partial))
			copy(instance, partial)
			out = append(out, instance)
			return nil
		}

		nextType := types[depth]
		var candidates []int
		for _, m := range partial {
			neighbors := adj.Neighbors(m, nextType)
			if candidates == nil {
				candidates = neighbors
			} else {
				candidates = intersectSorted(candidates, neighbors)
			}
			if len(candidates) == 0 {
				return nil
			}
		}

		for _, cand := range candidates {
			partial = append(partial, cand)
			if err := extend(depth + 1); err != nil {
				partial = partial[:len(partial)-1]
				return err
			}
			partial = partial[:len(partial)-1]
		}
		return nil
	}

	for _, a := range firstTypeInstances {
		partial = append(partial, a)
		if err := extend(1); err != nil {
			return nil, err
		}
		partial = partial[:len(partial)-1]
	}

	return out, nil
}

// intersectSorted returns the intersection of two ascending, duplicate-free
// int slices.
func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// InstanceEnumerator finds every fine-grained instance of a candidate
// pattern against the full NeighborGraph.
type InstanceEnumerator struct {
	ti  *TypeIndex
	ng  *NeighborGraph
	cap int
}

// NewInstanceEnumerator builds an enumerator bound to the given index and
// neighbor graph. instanceCap <= 0 disables the resource cap.
func NewInstanceEnumerator(ti *TypeIndex, ng *NeighborGraph, instanceCap int) *InstanceEnumerator {
	return &InstanceEnumerator{ti: ti, ng: ng, cap: instanceCap}
}

// Enumerate returns every instance of pattern, or a ResourceExhaustion
// error if the instance cap is exceeded mid-search.
func (e *InstanceEnumerator) Enumerate(pattern Pattern) ([]PatternInstance, error) {
	first := pattern.Types[0]
	pop := e.ti.Population(first)
	firstInstances := make([]int, pop)
	for local := 0; local < pop; local++ {
		firstInstances[local] = e.ti.ID(first, local)
	}
	return enumerateCliques(pattern, firstInstances, e.ng, e.cap)
}
