// Package viz writes per-request visualization artifacts: interactive
// Leaflet maps and SVG score surfaces. Artifacts land under
// <output_dir>/<result_id>/ so concurrent requests never collide.
package viz

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/geomarket/internal/geo"
	"github.com/sells-group/geomarket/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	// Artifact file names within the result directory.
	CommercialMapFile     = "location_map.html"
	CommercialHeatmapFile = "location_heatmap.svg"
	SoilMapFile           = "soil_map.html"
	SoilQualityMapFile    = "soil_quality_map.svg"
)

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// Generator writes visualization artifacts under a root output directory.
type Generator struct {
	outputDir string
}

// NewGenerator creates a generator rooted at outputDir.
func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

// OutputDir returns the artifact root.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

type marker struct {
	Lat, Lon float64
	Label    string
}

type circle struct {
	Lat, Lon float64
	RadiusM  float64
	Color    string
	Label    string
}

type mapData struct {
	Title       string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	AreaGeoJSON template.JS
	Markers     []marker
	Circles     []circle
}

func (g *Generator) resultDir(resultID string) (string, error) {
	dir := filepath.Join(g.outputDir, resultID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "viz: create dir %s", dir)
	}
	return dir, nil
}

func (g *Generator) renderMap(resultID, file string, data mapData) (string, error) {
	dir, err := g.resultDir(resultID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, file)

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "viz: create %s", path)
	}
	defer f.Close()

	if err := mapTemplate.Execute(f, data); err != nil {
		return "", eris.Wrap(err, "viz: render map template")
	}
	return path, nil
}

// CommercialMap writes the interactive location map with the analysis area
// and POI markers. Returns the artifact path.
func (g *Generator) CommercialMap(resultID string, lat, lon, radiusM float64, pois []geo.POI) (string, error) {
	data := mapData{
		Title:     "Analyse d'emplacement commercial",
		CenterLat: lat,
		CenterLon: lon,
		Zoom:      15,
	}

	area := geo.CirclePolygon(lat, lon, radiusM, 36)
	if gj, err := geojson.Marshal(area); err == nil {
		data.AreaGeoJSON = template.JS(gj)
	}

	data.Markers = append(data.Markers, marker{Lat: lat, Lon: lon, Label: "Emplacement analysé"})
	for _, p := range pois {
		label := p.Category
		if p.Name != "" {
			label = fmt.Sprintf("%s (%s)", p.Name, p.Category)
		}
		data.Markers = append(data.Markers, marker{Lat: p.Lat, Lon: p.Lon, Label: label})
	}

	return g.renderMap(resultID, CommercialMapFile, data)
}

// SoilMap writes the interactive soil map with colored zone circles laid
// out around the center, sized by zone proportion.
func (g *Generator) SoilMap(resultID string, lat, lon float64, zones []model.Zone) (string, error) {
	data := mapData{
		Title:     "Analyse de la qualité des sols",
		CenterLat: lat,
		CenterLon: lon,
		Zoom:      14,
	}
	data.Markers = append(data.Markers, marker{Lat: lat, Lon: lon, Label: "Parcelle analysée"})

	// Spread zone circles on a small ring around the center; radius tracks
	// the zone's share of the parcel.
	offsets := [][2]float64{{0.004, 0.004}, {0, -0.005}, {-0.004, 0.004}, {0.005, 0}}
	for i, z := range zones {
		off := offsets[i%len(offsets)]
		radius := 100 + z.Proportion*4
		data.Circles = append(data.Circles, circle{
			Lat:     lat + off[0],
			Lon:     lon + off[1],
			RadiusM: radius,
			Color:   ScoreColor(z.Score),
			Label:   fmt.Sprintf("%s (%.0f%%, score %.1f/10)", z.Name, z.Proportion, z.Score),
		})
	}

	return g.renderMap(resultID, SoilMapFile, data)
}
