package mining

import (
	"math"
	"sort"
)

// CoarseGrid groups each type's fine instances into cells of side 2r (r
// being the mining radius), so that any two points within radius r of one
// another always land in the same or an adjacent cell. One synthetic
// "coarse instance" is created per non-empty (type, cell), grounded on
// _build_coarse_level_data's grid_size=2*radius choice in colocation_miner.py.
type CoarseGrid struct {
	cellSize float64

	// per-type, ascending by synthetic coarse id within that type
	coarseIDs [][]int   // coarseIDs[t][local] -> synthetic global coarse id
	cellOf    []cellKey // cellOf[coarseID] -> grid cell
	typeOf    []TypeID  // typeOf[coarseID] -> type
	members   [][]int   // members[coarseID] -> fine instance ids mapped to this cell
}

// BuildCoarseGrid partitions ti's instances into coarse cells of side 2r.
func BuildCoarseGrid(ti *TypeIndex, radius float64) (*CoarseGrid, map[int]int) {
	cellSize := 2 * radius
	cg := &CoarseGrid{cellSize: cellSize}
	fineToCoarseID := make(map[int]int)

	n := ti.NumTypes()
	cg.coarseIDs = make([][]int, n)

	nextID := 0
	for t := TypeID(0); int(t) < n; t++ {
		pop := ti.Population(t)
		cellMembers := make(map[cellKey][]int)
		for local := 0; local < pop; local++ {
			x, y := ti.Point(t, local)
			key := cellKey{cx: int(math.Floor(x / cellSize)), cy: int(math.Floor(y / cellSize))}
			cellMembers[key] = append(cellMembers[key], ti.ID(t, local))
		}

		keys := make([]cellKey, 0, len(cellMembers))
		for k := range cellMembers {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].cx != keys[j].cx {
				return keys[i].cx < keys[j].cx
			}
			return keys[i].cy < keys[j].cy
		})

		for _, k := range keys {
			id := nextID
			nextID++
			cg.coarseIDs[t] = append(cg.coarseIDs[t], id)
			cg.cellOf = append(cg.cellOf, k)
			cg.typeOf = append(cg.typeOf, t)
			members := cellMembers[k]
			sort.Ints(members)
			cg.members = append(cg.members, members)
			for _, fine := range members {
				fineToCoarseID[fine] = id
			}
		}
	}

	return cg, fineToCoarseID
}

// Population returns the number of coarse instances of type t.
func (cg *CoarseGrid) Population(t TypeID) int { return len(cg.coarseIDs[t]) }

// IDs returns the synthetic coarse ids of type t, ascending.
func (cg *CoarseGrid) IDs(t TypeID) []int { return cg.coarseIDs[t] }

// Members returns the fine instance ids mapped onto coarse instance id.
func (cg *CoarseGrid) Members(id int) []int { return cg.members[id] }

// CoarseNeighborGraph is the adjacency between coarse instances: two
// coarse instances of different types are neighbors if their cells are
// within one ring of each other, an over-approximation of true within-
// radius adjacency that only ever adds edges the fine graph would also
// have reachable, never removes one (so the coarse participation index
// upper-bounds the true one and is safe to prune on).
type CoarseNeighborGraph struct {
	cg        *CoarseGrid
	neighbors map[int]map[TypeID][]int
}

// Neighbors implements adjacencySource.
func (g *CoarseNeighborGraph) Neighbors(id int, t TypeID) []int {
	byType, ok := g.neighbors[id]
	if !ok {
		return nil
	}
	return byType[t]
}

// BuildCoarseNeighborGraph computes adjacency between all coarse instances
// of distinct types whose cells are Chebyshev-adjacent (|dcx|<=1 && |dcy|<=1),
// excluding same-(type,cell) self-edges so the coarse index never
// undercounts a true fine-grained neighbor.
func BuildCoarseNeighborGraph(cg *CoarseGrid) *CoarseNeighborGraph {
	byCell := make(map[cellKey][]int)
	for id, key := range cg.cellOf {
		byCell[key] = append(byCell[key], id)
	}

	g := &CoarseNeighborGraph{cg: cg, neighbors: make(map[int]map[TypeID][]int)}

	for id, key := range cg.cellOf {
		t1 := cg.typeOf[id]
		acc := make(map[TypeID][]int)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				neighborKey := cellKey{cx: key.cx + dx, cy: key.cy + dy}
				for _, other := range byCell[neighborKey] {
					if other == id {
						continue
					}
					t2 := cg.typeOf[other]
					if t2 == t1 {
						continue
					}
					acc[t2] = append(acc[t2], other)
				}
			}
		}
		for t2 := range acc {
			sort.Ints(acc[t2])
		}
		g.neighbors[id] = acc
	}

	return g
}

// CoarsePruner evaluates a candidate pattern against the coarse graph and
// reports whether it survives: the same clique algorithm as
// InstanceEnumerator, run over coarse nodes, yielding an upper-bound
// participation index.
type CoarsePruner struct {
	ti  *TypeIndex
	cg  *CoarseGrid
	cng *CoarseNeighborGraph
}

// NewCoarsePruner builds a pruner bound to the given type index and coarse
// grid/graph. ti is needed to divide by each type's true fine population
// when computing the coarse participation index.
func NewCoarsePruner(ti *TypeIndex, cg *CoarseGrid, cng *CoarseNeighborGraph) *CoarsePruner {
	return &CoarsePruner{ti: ti, cg: cg, cng: cng}
}

// PruneStats reports the per-level outcome of coarse pruning, reproduced
// from the original's verbose _multi_resolution_pruning diagnostics.
// Remaining is the count of candidates that survived coarse pruning and
// went on to exact enumeration, i.e. TotalCandidates-Pruned — it is not
// the count ultimately admitted after exact evaluation.
type PruneStats struct {
	TotalCandidates int
	Pruned          int
	Remaining       int
}

// CompressionRatio returns the fraction of candidates eliminated by coarse
// pruning at this level.
func (s PruneStats) CompressionRatio() float64 {
	if s.TotalCandidates == 0 {
		return 0
	}
	return float64(s.Pruned) / float64(s.TotalCandidates)
}

// Survives reports whether candidate's coarse participation index meets
// minPrevalence; a false result means the fine InstanceEnumerator can
// safely skip this candidate.
func (p *CoarsePruner) Survives(candidate Pattern, minPrevalence float64) (bool, error) {
	types := candidate.Types
	first := types[0]
	firstInstances := p.cg.IDs(first)

	instances, err := enumerateCliques(candidate, firstInstances, p.cng, 0)
	if err != nil {
		return false, err
	}
	if len(instances) == 0 {
		return false, nil
	}

	// Participation is measured over the fine instances underlying every
	// participating coarse cell, not over coarse-cell counts: unioning
	// cg.Members(id) and dividing by ti.Population(t) is what keeps this
	// an upper bound on the true fine participation index, per
	// _calculate_coarse_participation_index.
	participants := make([]map[int]struct{}, len(types))
	for i := range types {
		participants[i] = make(map[int]struct{})
	}
	for _, inst := range instances {
		for i, coarseID := range inst {
			for _, fine := range p.cg.Members(coarseID) {
				participants[i][fine] = struct{}{}
			}
		}
	}

	pi := math.Inf(1)
	for i, t := range types {
		r := ratio(len(participants[i]), p.ti.Population(t))
		if r < pi {
			pi = r
		}
	}

	return pi >= minPrevalence, nil
}
