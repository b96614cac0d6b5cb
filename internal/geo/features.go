package geo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	overpass "github.com/serjvanilla/go-overpass"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// POI is a point of interest retrieved from OpenStreetMap.
type POI struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name,omitempty"`
	Category string            `json:"category"`
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Tags     map[string]string `json:"-"`
}

// Road is a routable way with its accumulated length.
type Road struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name,omitempty"`
	Highway string  `json:"highway"`
	LengthM float64 `json:"length_m"`
}

// FeatureRepository retrieves OSM features around a point.
type FeatureRepository interface {
	POIs(ctx context.Context, lat, lon, radiusM float64) ([]POI, error)
	Roads(ctx context.Context, lat, lon, radiusM float64) ([]Road, error)
}

// The POI tag filters mirror the categories the scorer and the mock data
// speak in.
const (
	amenityFilter = "pharmacy|hospital|clinic|doctors|school|university"
	shopFilter    = "convenience|supermarket"
	highwayFilter = "bus_stop|traffic_signals"
)

// OverpassRepository implements FeatureRepository against an Overpass API
// endpoint.
type OverpassRepository struct {
	client *overpass.Client
}

// NewOverpassRepository creates a repository for the given Overpass endpoint.
func NewOverpassRepository(endpoint string, timeout time.Duration) *OverpassRepository {
	httpClient := &http.Client{Timeout: timeout}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassRepository{client: &client}
}

// POIs returns the points of interest within the radius around the point.
func (r *OverpassRepository) POIs(ctx context.Context, lat, lon, radiusM float64) ([]POI, error) {
	bbox := BoundsAround(lat, lon, radiusM).BBox()
	query := fmt.Sprintf(`
		[out:json];
		(
			node["amenity"~"%s"](%s);
			node["shop"~"%s"](%s);
			node["highway"~"%s"](%s);
		);
		out body;
	`, amenityFilter, bbox, shopFilter, bbox, highwayFilter, bbox)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "geo: poi query")
	}

	var pois []POI
	for _, node := range result.Nodes {
		if node == nil {
			continue
		}
		category := nodeCategory(node.Tags)
		if category == "" {
			continue
		}
		// Overpass bbox is rectangular; keep only nodes inside the circle.
		if Haversine(lat, lon, node.Lat, node.Lon) > radiusM {
			continue
		}
		pois = append(pois, POI{
			ID:       node.ID,
			Name:     node.Tags["name"],
			Category: category,
			Lat:      node.Lat,
			Lon:      node.Lon,
			Tags:     node.Tags,
		})
	}
	zap.L().Debug("geo: pois retrieved", zap.Int("count", len(pois)))
	return pois, nil
}

// Roads returns highway ways crossing the radius around the point, with
// lengths clipped to the retrieved node chains.
func (r *OverpassRepository) Roads(ctx context.Context, lat, lon, radiusM float64) ([]Road, error) {
	bbox := BoundsAround(lat, lon, radiusM).BBox()
	query := fmt.Sprintf(`
		[out:json];
		(
			way["highway"](%s);
		);
		out body;
		>;
		out skel qt;
	`, bbox)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "geo: road query")
	}

	var roads []Road
	for _, way := range result.Ways {
		if way == nil || len(way.Nodes) < 2 {
			continue
		}
		var length float64
		for i := 1; i < len(way.Nodes); i++ {
			a, b := way.Nodes[i-1], way.Nodes[i]
			if a == nil || b == nil {
				continue
			}
			length += Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
		}
		roads = append(roads, Road{
			ID:      way.ID,
			Name:    way.Tags["name"],
			Highway: way.Tags["highway"],
			LengthM: length,
		})
	}
	zap.L().Debug("geo: roads retrieved", zap.Int("count", len(roads)))
	return roads, nil
}

func (r *OverpassRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := r.client.Query(query)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// nodeCategory maps a node's tags to the scoring category it counts under.
func nodeCategory(tags map[string]string) string {
	for _, key := range []string{"amenity", "shop", "highway"} {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return ""
}

// CountByCategory tallies POIs per category, the shape the scorer consumes.
func CountByCategory(pois []POI) map[string]int {
	counts := make(map[string]int, len(pois))
	for _, p := range pois {
		counts[p.Category]++
	}
	return counts
}

// TotalLength sums road lengths in meters.
func TotalLength(roads []Road) float64 {
	var total float64
	for _, r := range roads {
		total += r.LengthM
	}
	return total
}

// competitorCategories maps French business types to the OSM category that
// identifies a direct competitor.
var competitorCategories = map[string]string{
	"pharmacie":   "pharmacy",
	"boulangerie": "bakery",
	"supermarche": "supermarket",
	"supermarché": "supermarket",
	"restaurant":  "restaurant",
	"cafe":        "cafe",
	"café":        "cafe",
}

// CountCompetitors counts POIs of the same type as the planned business.
func CountCompetitors(pois []POI, businessType string) int {
	category, ok := competitorCategories[strings.ToLower(strings.TrimSpace(businessType))]
	if !ok {
		category = strings.ToLower(strings.TrimSpace(businessType))
	}
	count := 0
	for _, p := range pois {
		if p.Category == category {
			count++
		}
	}
	return count
}
