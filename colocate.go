// Package colocate is the public entry point for the spatial colocation
// pattern mining engine: discover sets of feature types whose instances
// co-occur within a radius more often than a participation-index
// threshold, across the components internal/mining implements.
package colocate

import (
	"context"

	"github.com/spatialmine/colocate/internal/mining"
)

// Point is a single tagged spatial record: (id, type, x, y). Instance ids
// must be unique within a call to Mine.
type Point struct {
	ID   int
	Type string
	X, Y float64
}

// Options controls a single Mine run.
type Options struct {
	// Radius is the neighborhood distance threshold; must be > 0.
	Radius float64
	// MinPrevalence is the participation-index admission threshold, in [0, 1].
	MinPrevalence float64
	// EnableCoarsePruning turns on the multi-resolution coarse-grid filter.
	EnableCoarsePruning bool
	// MaxWorkers caps the worker pool; 0 means runtime.NumCPU().
	MaxWorkers int
	// InstanceCap caps the instances a single candidate may enumerate; 0
	// disables the cap.
	InstanceCap int
}

// Pattern is an admitted colocation pattern: the participating feature
// types (by label, not internal id), its participation index, and the
// witnessing instance tuples.
type Pattern struct {
	Types              []string
	ParticipationIndex float64
	Instances          [][]int
}

// Result is the output of a completed mining run.
type Result struct {
	Patterns []Pattern
}

// Engine is the public colocation mining engine.
type Engine struct {
	inner *mining.Engine
}

// New returns a ready-to-use Engine.
func New() *Engine {
	return &Engine{inner: mining.NewEngine()}
}

// Mine discovers every colocation pattern in points meeting opts, sorted
// by descending participation index then ascending pattern size.
func (e *Engine) Mine(ctx context.Context, points []Point, opts Options) (Result, error) {
	internalPoints := make([]mining.Point, len(points))
	for i, p := range points {
		internalPoints[i] = mining.Point{ID: p.ID, Type: p.Type, X: p.X, Y: p.Y}
	}

	res, err := e.inner.Mine(ctx, internalPoints, mining.MiningOptions{
		Radius:              opts.Radius,
		MinPrevalence:       opts.MinPrevalence,
		EnableCoarsePruning: opts.EnableCoarsePruning,
		MaxWorkers:          opts.MaxWorkers,
		InstanceCap:         opts.InstanceCap,
	})
	if err != nil {
		return Result{}, err
	}

	ti, err := mining.BuildTypeIndex(internalPoints, opts.Radius)
	if err != nil {
		return Result{}, err
	}

	out := make([]Pattern, len(res.Patterns))
	for i, p := range res.Patterns {
		instances := make([][]int, len(p.Instances))
		for j, inst := range p.Instances {
			instances[j] = append([]int(nil), inst...)
		}
		out[i] = Pattern{
			Types:              ti.LabelTypes(p.Pattern.Types),
			ParticipationIndex: p.ParticipationIndex,
			Instances:          instances,
		}
	}

	return Result{Patterns: out}, nil
}
