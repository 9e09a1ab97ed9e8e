package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/spatialmine/colocate/internal/mining"
)

const defaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// OSMLoader queries the Overpass API for amenity nodes within a bounding
// box, grounded on OSMColocationDataset in
// original_source/src/colocation_dataset.py. Each POI type becomes one
// node[amenity=...](bbox); clause in the same multi-statement Overpass QL
// query the original builds.
type OSMLoader struct {
	// Endpoint defaults to the public Overpass API interpreter if empty.
	Endpoint string
	// MinLat, MinLon, MaxLat, MaxLon is the query bounding box.
	MinLat, MinLon, MaxLat, MaxLon float64
	// POITypes is the list of OSM amenity tag values to query.
	POITypes []string

	HTTPClient *http.Client
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Load fetches amenity nodes for every configured POI type and returns
// them as a dense, mining-ready point set.
func (l *OSMLoader) Load(ctx context.Context) ([]mining.Point, error) {
	if len(l.POITypes) == 0 {
		return nil, errorutil.New("OSMLoader requires at least one POI type")
	}

	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	endpoint := l.Endpoint
	if endpoint == "" {
		endpoint = defaultOverpassEndpoint
	}

	query := l.buildQuery()

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, errorutil.New("failed to build overpass request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errorutil.New("overpass request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorutil.New("overpass API returned status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errorutil.New("failed to decode overpass response: %v", err)
	}

	raw := make([]rawPoint, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		if el.Type != "node" {
			continue
		}
		amenity := el.Tags["amenity"]
		if amenity == "" {
			amenity = "unknown"
		}
		raw = append(raw, rawPoint{
			sourceID: strconv.FormatInt(el.ID, 10),
			typ:      amenity,
			x:        el.Lat,
			y:        el.Lon,
		})
	}

	return densify(raw), nil
}

func (l *OSMLoader) buildQuery() string {
	var clauses []string
	for _, poi := range l.POITypes {
		clauses = append(clauses, fmt.Sprintf(`node["amenity"="%s"](%v,%v,%v,%v);`,
			poi, l.MinLat, l.MinLon, l.MaxLat, l.MaxLon))
	}
	return fmt.Sprintf("[out:json];\n(\n%s\n);\nout body;", strings.Join(clauses, "\n"))
}
