package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geomarket/internal/geo"
	"github.com/sells-group/geomarket/internal/model"
)

func TestCommercialMapWritesArtifact(t *testing.T) {
	g := NewGenerator(t.TempDir())

	pois := []geo.POI{
		{ID: 1, Name: "Pharmacie Centrale", Category: "pharmacy", Lat: 48.851, Lon: 2.351},
		{ID: 2, Category: "school", Lat: 48.849, Lon: 2.349},
	}
	path, err := g.CommercialMap("res-1", 48.85, 2.35, 500, pois)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(g.OutputDir(), "res-1", CommercialMapFile), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "leaflet")
	assert.Contains(t, html, "Pharmacie Centrale")
	assert.Contains(t, html, "Polygon", "area GeoJSON should be embedded")
}

func TestSoilMapWritesZoneCircles(t *testing.T) {
	g := NewGenerator(t.TempDir())

	zones := []model.Zone{
		{Name: "Zone optimale", Proportion: 40, Score: 8.7},
		{Name: "Zone intermédiaire", Proportion: 35, Score: 6.5},
		{Name: "Zone peu adaptée", Proportion: 25, Score: 4.2},
	}
	path, err := g.SoilMap("res-2", 44.84, -0.58, zones)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "Zone optimale")
	assert.Equal(t, 3, strings.Count(html, "L.circle("))
}

func TestCommercialHeatmapWritesSVG(t *testing.T) {
	g := NewGenerator(t.TempDir())

	path, err := g.CommercialHeatmap("res-3", map[string]float64{"global_score": 7.1})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, CommercialHeatmapFile))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	svg := string(content)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "Attractivité commerciale")
	assert.Greater(t, strings.Count(svg, "<rect"), gridCells*gridCells)
}

func TestSoilQualityMapBandsSumToFullHeight(t *testing.T) {
	g := NewGenerator(t.TempDir())

	zones := []model.Zone{
		{Name: "A", Proportion: 60, Score: 9},
		{Name: "B", Proportion: 40, Score: 3},
	}
	path, err := g.SoilQualityMap("res-4", zones)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	svg := string(content)
	assert.Equal(t, 2, strings.Count(svg, `stroke="#333"`))
	assert.Contains(t, svg, "Qualité des sols par zone")
}

func TestArtifactsIsolatedPerResult(t *testing.T) {
	g := NewGenerator(t.TempDir())

	p1, err := g.CommercialHeatmap("id-a", map[string]float64{"global_score": 5})
	require.NoError(t, err)
	p2, err := g.CommercialHeatmap("id-b", map[string]float64{"global_score": 5})
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	assert.Equal(t, "id-a", filepath.Base(filepath.Dir(p1)))
	assert.Equal(t, "id-b", filepath.Base(filepath.Dir(p2)))
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, ScoreColor(0), ScoreColor(-5), "scores clamp at 0")
	assert.Equal(t, ScoreColor(10), ScoreColor(15), "scores clamp at 10")
	assert.NotEqual(t, ScoreColor(2), ScoreColor(9))
}
