// Package dataset provides the out-of-core dataset loaders that sit
// outside the mining core: they fetch raw tagged points from an external
// source and re-key instance ids to a dense, zero-based range before
// handing the points to internal/mining, per the loader contract.
package dataset

import (
	"context"

	"github.com/spatialmine/colocate/internal/mining"
)

// Loader fetches a tagged point set from an external data source.
type Loader interface {
	Load(ctx context.Context) ([]mining.Point, error)
}

// rawPoint is a point as it arrives from a source, before dense re-keying.
type rawPoint struct {
	sourceID string
	typ      string
	x, y     float64
}

// densify re-keys rawPoints to dense, zero-based instance ids, stable for
// a given call (first-seen order), as required at the dataset-loader
// boundary before points reach the mining core.
func densify(raw []rawPoint) []mining.Point {
	out := make([]mining.Point, len(raw))
	for i, r := range raw {
		out[i] = mining.Point{ID: i, Type: r.typ, X: r.x, Y: r.y}
	}
	return out
}
