package runner

import (
	"os"
	"strconv"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Options holds the resolved CLI configuration for a single colocate run.
type Options struct {
	// Source selects the dataset loader: "osm" or "gbif".
	Source string
	// Area is "min_lat,min_lon,max_lat,max_lon".
	Area string
	// POITypes is the list of feature types to query for the OSM loader.
	POITypes goflags.StringSlice
	// Species is the list of species names to query for the GBIF loader.
	Species goflags.StringSlice

	Radius        float64
	MinPrevalence float64
	CoarsePrune   bool
	Workers       int

	Output  string
	Config  string
	Verbose bool
	Silent  bool
}

// ParseFlags parses the colocate CLI flags, applying MiningDefaults for
// any radius/min-prevalence/coarse-prune/workers flag left at its
// goflags zero value.
func ParseFlags() *Options {
	var radiusStr, minPrevalenceStr string
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Spatial colocation pattern mining engine for tagged point datasets.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Source, "source", "s", "osm", "dataset source to query (osm, gbif)"),
		flagSet.StringVarP(&opts.Area, "area", "a", "", "bounding box as min_lat,min_lon,max_lat,max_lon"),
		flagSet.StringSliceVarP(&opts.POITypes, "poi-types", "pt", nil, "comma-separated OSM amenity types to query", goflags.FileCommaSeparatedStringSliceOptions),
		flagSet.StringSliceVarP(&opts.Species, "species", "sp", nil, "comma-separated GBIF species names to query", goflags.FileCommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("mining", "Mining",
		flagSet.StringVarP(&radiusStr, "radius", "r", "", "neighborhood radius in coordinate units (default from config)"),
		flagSet.StringVarP(&minPrevalenceStr, "min-prevalence", "mp", "", "participation index admission threshold in [0,1] (default from config)"),
		flagSet.BoolVarP(&opts.CoarsePrune, "coarse-prune", "cp", DefaultMiningDefaults.CoarsePrune, "enable multi-resolution coarse-grid pruning"),
		flagSet.IntVar(&opts.Workers, "workers", DefaultMiningDefaults.Workers, "max parallel workers (default runtime.NumCPU())"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file to write discovered patterns"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display colocate version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `colocate cli config file (default '$HOME/.config/colocate/config.yaml')`),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	opts.Radius = DefaultMiningDefaults.Radius
	if radiusStr != "" {
		r, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			gologger.Fatal().Msgf("Could not parse radius: %s\n", err)
		}
		opts.Radius = r
	}

	opts.MinPrevalence = DefaultMiningDefaults.MinPrevalence
	if minPrevalenceStr != "" {
		mp, err := strconv.ParseFloat(minPrevalenceStr, 64)
		if err != nil {
			gologger.Fatal().Msgf("Could not parse min-prevalence: %s\n", err)
		}
		opts.MinPrevalence = mp
	}

	if opts.Source != "osm" && opts.Source != "gbif" {
		gologger.Fatal().Msgf("colocate: unsupported source %q (expected osm or gbif)", opts.Source)
	}
	if opts.Area == "" {
		gologger.Fatal().Msgf("colocate: --area is required")
	}
	if opts.Source == "osm" && len(opts.POITypes) == 0 {
		gologger.Fatal().Msgf("colocate: --poi-types is required when --source=osm")
	}
	if opts.Source == "gbif" && len(opts.Species) == 0 {
		gologger.Fatal().Msgf("colocate: --species is required when --source=gbif")
	}

	return opts
}

// ParseArea parses Options.Area into (minLat, minLon, maxLat, maxLon).
func (o *Options) ParseArea() (minLat, minLon, maxLat, maxLon float64, err error) {
	parts := strings.Split(o.Area, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, errorutil.New("area must have 4 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, errx := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if errx != nil {
			return 0, 0, 0, 0, errorutil.New("invalid area value %q: %v", p, errx)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
