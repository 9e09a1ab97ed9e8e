package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/projectdiscovery/gologger"
	colocate "github.com/spatialmine/colocate"
	"github.com/spatialmine/colocate/internal/dataset"
	"github.com/spatialmine/colocate/internal/runner"
)

func main() {
	cliOpts := runner.ParseFlags()

	minLat, minLon, maxLat, maxLon, err := cliOpts.ParseArea()
	if err != nil {
		gologger.Fatal().Msgf("invalid --area: %v", err)
	}

	var loader dataset.Loader
	switch cliOpts.Source {
	case "osm":
		loader = &dataset.OSMLoader{
			MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon,
			POITypes: cliOpts.POITypes,
		}
	case "gbif":
		loader = &dataset.GBIFLoader{
			MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon,
			SpeciesNames: cliOpts.Species,
		}
	default:
		gologger.Fatal().Msgf("unsupported source: %s", cliOpts.Source)
	}

	ctx := context.Background()

	gologger.Info().Msgf("loading points from %s for area %s", cliOpts.Source, cliOpts.Area)
	points, err := loader.Load(ctx)
	if err != nil {
		gologger.Fatal().Msgf("failed to load dataset: %v", err)
	}
	gologger.Info().Msgf("loaded %d points", len(points))

	colPoints := make([]colocate.Point, len(points))
	for i, p := range points {
		colPoints[i] = colocate.Point{ID: p.ID, Type: p.Type, X: p.X, Y: p.Y}
	}

	engine := colocate.New()
	result, err := engine.Mine(ctx, colPoints, colocate.Options{
		Radius:              cliOpts.Radius,
		MinPrevalence:       cliOpts.MinPrevalence,
		EnableCoarsePruning: cliOpts.CoarsePrune,
		MaxWorkers:          cliOpts.Workers,
	})
	if err != nil {
		gologger.Fatal().Msgf("mining failed: %v", err)
	}

	gologger.Info().Msgf("discovered %d colocation patterns", len(result.Patterns))

	output := getOutputWriter(cliOpts.Output)
	defer closeOutput(output, cliOpts.Output)

	writeTable(output, result)
}

func writeTable(w io.Writer, result colocate.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPES\tPI\tINSTANCES")
	for _, p := range result.Patterns {
		fmt.Fprintf(tw, "%v\t%.4f\t%d\n", p.Types, p.ParticipationIndex, len(p.Instances))
	}
	tw.Flush()
}

func getOutputWriter(outputPath string) io.Writer {
	if outputPath != "" {
		fs, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			gologger.Fatal().Msgf("failed to open output file %v got %v", outputPath, err)
		}
		return fs
	}
	return os.Stdout
}

func closeOutput(output io.Writer, outputPath string) {
	if outputPath != "" {
		if closer, ok := output.(io.Closer); ok {
			closer.Close()
		}
	}
}
