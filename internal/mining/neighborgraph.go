package mining

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// NeighborGraph is the precomputed, symmetric within-radius adjacency
// between instances of every type pair, keyed by instance id and the
// neighbor's type. It is built once per mining run and never mutated
// afterward, so concurrent readers never need synchronization.
type NeighborGraph struct {
	// neighbors[id][t] is the sorted list of instance ids of type t within
	// radius of instance id. A type pair with no within-radius neighbors at
	// all is simply absent from the inner map.
	neighbors map[int]map[TypeID][]int
}

// Neighbors returns the sorted instance ids of type t within radius of
// instance id. Returns nil (not an error) if none exist.
func (g *NeighborGraph) Neighbors(id int, t TypeID) []int {
	byType, ok := g.neighbors[id]
	if !ok {
		return nil
	}
	return byType[t]
}

type pairEdges struct {
	t1, t2 TypeID
	// edges[a] = sorted neighbor ids of type t2 within radius of instance a (type t1)
	edgesT1toT2 map[int][]int
	// edges[b] = sorted neighbor ids of type t1 within radius of instance b (type t2)
	edgesT2toT1 map[int][]int
}

// BuildNeighborGraph computes the within-radius adjacency for every
// unordered pair of distinct types, fanning the per-pair work out across a
// worker pool capped at maxWorkers (0 means runtime.NumCPU()), grounded on
// the errgroup-based worker pool in parallel_executor.go. A merge barrier
// (errgroup.Wait) unions every goroutine's local result into the shared,
// read-only NeighborGraph before this function returns.
func BuildNeighborGraph(ctx context.Context, ti *TypeIndex, radius float64, maxWorkers int) (*NeighborGraph, error) {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	n := ti.NumTypes()
	var pairs []struct{ t1, t2 TypeID }
	for t1 := TypeID(0); int(t1) < n; t1++ {
		for t2 := t1 + 1; int(t2) < n; t2++ {
			pairs = append(pairs, struct{ t1, t2 TypeID }{t1, t2})
		}
	}

	results := make([]*pairEdges, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return Cancelled()
			default:
			}
			results[i] = computePairEdges(ti, radius, pair.t1, pair.t2)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ng := &NeighborGraph{neighbors: make(map[int]map[TypeID][]int)}
	for _, pe := range results {
		if pe == nil {
			continue
		}
		for a, bs := range pe.edgesT1toT2 {
			ng.set(a, pe.t2, bs)
		}
		for b, as := range pe.edgesT2toT1 {
			ng.set(b, pe.t1, as)
		}
	}
	return ng, nil
}

func (g *NeighborGraph) set(id int, t TypeID, neighbors []int) {
	byType, ok := g.neighbors[id]
	if !ok {
		byType = make(map[TypeID][]int)
		g.neighbors[id] = byType
	}
	byType[t] = neighbors
}

func computePairEdges(ti *TypeIndex, radius float64, t1, t2 TypeID) *pairEdges {
	pe := &pairEdges{
		t1: t1, t2: t2,
		edgesT1toT2: make(map[int][]int),
		edgesT2toT1: make(map[int][]int),
	}

	pop1 := ti.Population(t1)
	for local := 0; local < pop1; local++ {
		a := ti.ID(t1, local)
		x, y := ti.Point(t1, local)
		locals := ti.Query(t2, x, y, radius)
		if len(locals) == 0 {
			continue
		}
		ids := make([]int, len(locals))
		for i, l := range locals {
			b := ti.ID(t2, l)
			ids[i] = b
			pe.edgesT2toT1[b] = append(pe.edgesT2toT1[b], a)
		}
		sort.Ints(ids)
		pe.edgesT1toT2[a] = ids
	}

	for b := range pe.edgesT2toT1 {
		sort.Ints(pe.edgesT2toT1[b])
	}

	return pe
}
