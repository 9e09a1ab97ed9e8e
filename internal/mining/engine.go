package mining

import (
	"context"
	"runtime"

	"github.com/projectdiscovery/gologger"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates the full colocation mining pipeline: TypeIndex build,
// NeighborGraph build, size-2 pair mining, then a level-wise
// generate-candidates / coarse-prune / enumerate-instances / evaluate loop
// until a level produces no frequent patterns. It owns no package-level
// mutable state and has no fields: the TypeIndex, NeighborGraph, coarse
// structures and PatternStore are all local to a single Mine call,
// mirroring how inducer.Orchestrator is a plain constructor-built
// aggregate with no shared globals.
type Engine struct{}

// NewEngine returns a ready-to-use Engine. Engine holds no state between
// calls, so a single instance may be reused or shared freely.
func NewEngine() *Engine {
	return &Engine{}
}

// Mine runs one complete colocation mining pass over points and returns
// every admitted pattern, sorted per PatternStore's canonical order.
func (e *Engine) Mine(ctx context.Context, points []Point, opts MiningOptions) (Result, error) {
	opts = opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	ti, err := BuildTypeIndex(points, opts.Radius)
	if err != nil {
		return Result{}, err
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	ng, err := BuildNeighborGraph(ctx, ti, opts.Radius, maxWorkers)
	if err != nil {
		return Result{}, err
	}

	store := NewPatternStore()

	admitted2, _ := MineSize2Patterns(ti, ng, opts.MinPrevalence)
	for _, a := range admitted2 {
		store.Add(a)
	}

	frequent := make([]Pattern, len(admitted2))
	for i, a := range admitted2 {
		frequent[i] = a.Pattern
	}

	enumerator := NewInstanceEnumerator(ti, ng, opts.InstanceCap)

	for k := 3; len(frequent) > 0; k++ {
		select {
		case <-ctx.Done():
			return Result{}, Cancelled()
		default:
		}

		candidates := GenerateCandidates(frequent, k)
		if len(candidates) == 0 {
			break
		}

		var cg *CoarseGrid
		var cng *CoarseNeighborGraph
		var pruner *CoarsePruner
		if opts.EnableCoarsePruning {
			cg, _ = BuildCoarseGrid(ti, opts.Radius)
			cng = BuildCoarseNeighborGraph(cg)
			pruner = NewCoarsePruner(ti, cg, cng)
		}

		type levelResult struct {
			admitted     *AdmittedPattern
			coarsePruned bool
		}

		results := make([]levelResult, len(candidates))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxWorkers)

		var stats PruneStats
		stats.TotalCandidates = len(candidates)

		for i, candidate := range candidates {
			i, candidate := i, candidate
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return Cancelled()
				default:
				}

				if pruner != nil {
					survives, err := pruner.Survives(candidate, opts.MinPrevalence)
					if err != nil {
						return err
					}
					if !survives {
						results[i].coarsePruned = true
						return nil
					}
				}

				instances, err := enumerator.Enumerate(candidate)
				if err != nil {
					return err
				}
				if len(instances) == 0 {
					return nil
				}

				pi, _ := EvaluatePrevalence(ti, candidate, instances)
				if pi < opts.MinPrevalence {
					return nil
				}

				results[i].admitted = &AdmittedPattern{
					Pattern:            candidate,
					ParticipationIndex: pi,
					Instances:          instances,
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return Result{}, err
		}

		var nextFrequent []Pattern
		for _, r := range results {
			if r.coarsePruned {
				stats.Pruned++
			}
			if r.admitted == nil {
				continue
			}
			store.Add(*r.admitted)
			nextFrequent = append(nextFrequent, r.admitted.Pattern)
		}
		stats.Remaining = stats.TotalCandidates - stats.Pruned

		if opts.EnableCoarsePruning {
			gologger.Info().Msgf("level %d: %d candidates, %d pruned, %d remaining (compression %.1f%%)",
				k, stats.TotalCandidates, stats.Pruned, stats.Remaining, stats.CompressionRatio()*100)
		}

		frequent = nextFrequent
	}

	return Result{Patterns: store.Sorted()}, nil
}
