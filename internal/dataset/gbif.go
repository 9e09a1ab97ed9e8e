package dataset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/spatialmine/colocate/internal/mining"
)

const (
	gbifSpeciesMatchURL = "https://api.gbif.org/v1/species/match"
	gbifOccurrenceURL   = "https://api.gbif.org/v1/occurrence/search"
	gbifPageSize        = 300
)

// GBIFLoader paginates the GBIF occurrence-search REST endpoint per
// species name with a minimum-year filter and an optional per-species
// record cap, grounded on GBIFColocationDataset in
// original_source/src/colocation_dataset.py.
type GBIFLoader struct {
	MinLat, MinLon, MaxLat, MaxLon float64
	SpeciesNames                   []string
	// MinYear defaults to 2010, matching the original's default.
	MinYear int
	// MaxYear defaults to the current year if 0.
	MaxYear int
	// LimitPerSpecies caps the records fetched per species; 0 means no cap.
	LimitPerSpecies int

	HTTPClient *http.Client
}

type gbifMatchResponse struct {
	MatchType string `json:"matchType"`
	UsageKey  int64  `json:"usageKey"`
}

type gbifOccurrenceResponse struct {
	Count   int              `json:"count"`
	Results []gbifOccurrence `json:"results"`
}

type gbifOccurrence struct {
	Key              int64    `json:"key"`
	DecimalLatitude  *float64 `json:"decimalLatitude"`
	DecimalLongitude *float64 `json:"decimalLongitude"`
}

// Load fetches occurrence records for every configured species and
// returns them as a dense, mining-ready point set, one feature type per
// species name.
func (l *GBIFLoader) Load(ctx context.Context) ([]mining.Point, error) {
	if len(l.SpeciesNames) == 0 {
		return nil, errorutil.New("GBIFLoader requires at least one species name")
	}

	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	minYear := l.MinYear
	if minYear == 0 {
		minYear = 2010
	}
	maxYear := l.MaxYear
	if maxYear == 0 {
		maxYear = time.Now().Year()
	}

	var raw []rawPoint
	for _, species := range l.SpeciesNames {
		key, found, err := l.speciesKey(ctx, client, species)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		occurrences, err := l.occurrencesForSpecies(ctx, client, key, species, minYear, maxYear)
		if err != nil {
			return nil, err
		}
		raw = append(raw, occurrences...)
	}

	return densify(raw), nil
}

func (l *GBIFLoader) speciesKey(ctx context.Context, client *http.Client, species string) (int64, bool, error) {
	q := url.Values{"name": {species}, "strict": {"false"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gbifSpeciesMatchURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, false, errorutil.New("failed to build species match request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, false, errorutil.New("species match request failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed gbifMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, false, errorutil.New("failed to decode species match response: %v", err)
	}

	if parsed.MatchType == "" || parsed.MatchType == "NONE" {
		return 0, false, nil
	}
	return parsed.UsageKey, true, nil
}

func (l *GBIFLoader) occurrencesForSpecies(ctx context.Context, client *http.Client, speciesKey int64, species string, minYear, maxYear int) ([]rawPoint, error) {
	limit := l.LimitPerSpecies

	var out []rawPoint
	offset := 0
	total := -1

	for total < 0 || (offset < total && (limit <= 0 || len(out) < limit)) {
		q := url.Values{
			"taxonKey":         {strconv.FormatInt(speciesKey, 10)},
			"hasCoordinate":    {"true"},
			"decimalLatitude":  {formatRange(l.MinLat, l.MaxLat)},
			"decimalLongitude": {formatRange(l.MinLon, l.MaxLon)},
			"limit":            {strconv.Itoa(gbifPageSize)},
			"year":             {formatIntRange(minYear, maxYear)},
			"offset":           {strconv.Itoa(offset)},
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, gbifOccurrenceURL+"?"+q.Encode(), nil)
		if err != nil {
			return nil, errorutil.New("failed to build occurrence request for %s: %v", species, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, errorutil.New("occurrence request failed for %s: %v", species, err)
		}

		var parsed gbifOccurrenceResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, errorutil.New("failed to decode occurrence response for %s: %v", species, decodeErr)
		}

		if total < 0 {
			total = parsed.Count
			if limit > 0 && limit < total {
				total = limit
			}
		}

		for _, r := range parsed.Results {
			if r.DecimalLatitude == nil || r.DecimalLongitude == nil {
				continue
			}
			out = append(out, rawPoint{
				sourceID: strconv.FormatInt(r.Key, 10),
				typ:      species,
				x:        *r.DecimalLatitude,
				y:        *r.DecimalLongitude,
			})
			if limit > 0 && len(out) >= limit {
				break
			}
		}

		offset += gbifPageSize
		if len(parsed.Results) == 0 {
			break
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func formatRange(min, max float64) string {
	return strconv.FormatFloat(min, 'f', -1, 64) + "," + strconv.FormatFloat(max, 'f', -1, 64)
}

func formatIntRange(min, max int) string {
	return strconv.Itoa(min) + "," + strconv.Itoa(max)
}
