package viz

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geomarket/internal/model"
)

const (
	gridCells = 20
	cellPx    = 24
	legendPx  = 60
)

// ScoreColor maps a 0-10 score onto a red-yellow-green ramp.
func ScoreColor(score float64) string {
	s := math.Max(0, math.Min(score, 10)) / 10
	var r, g float64
	if s < 0.5 {
		r = 1
		g = s * 2
	} else {
		r = (1 - s) * 2
		g = 1
	}
	return fmt.Sprintf("#%02x%02x30", int(r*255), int(g*255))
}

func (g *Generator) writeSVG(resultID, file, svg string) (string, error) {
	dir, err := g.resultDir(resultID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return "", eris.Wrapf(err, "viz: write %s", path)
	}
	return path, nil
}

// CommercialHeatmap writes the attractiveness surface as an SVG grid. The
// synthetic surface is scaled by the global score so stronger locations
// render warmer overall.
func (g *Generator) CommercialHeatmap(resultID string, scores map[string]float64) (string, error) {
	scale := scores["global_score"] / 10
	if scale <= 0 {
		scale = 0.5
	}

	var b strings.Builder
	width := gridCells*cellPx + legendPx
	height := gridCells*cellPx + 40
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, width, height)
	fmt.Fprintf(&b, `<text x="10" y="20" font-family="sans-serif" font-size="14">Attractivité commerciale</text>`)

	for i := 0; i < gridCells; i++ {
		for j := 0; j < gridCells; j++ {
			x := float64(i) / (gridCells - 1) * 10
			y := float64(j) / (gridCells - 1) * 10
			z := (math.Sin(x)*math.Cos(y)*5 + 5) * scale
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				i*cellPx, 30+j*cellPx, cellPx, cellPx, ScoreColor(z))
		}
	}

	// Legend ramp.
	for j := 0; j < gridCells; j++ {
		v := 10 - float64(j)/(gridCells-1)*10
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="20" height="%d" fill="%s"/>`,
			gridCells*cellPx+20, 30+j*cellPx, cellPx, ScoreColor(v))
	}
	b.WriteString(`</svg>`)

	return g.writeSVG(resultID, CommercialHeatmapFile, b.String())
}

// SoilQualityMap writes the zone quality surface: horizontal bands sized by
// zone proportion, colored by zone score.
func (g *Generator) SoilQualityMap(resultID string, zones []model.Zone) (string, error) {
	const width, bandHeight = 520, 400

	var total float64
	for _, z := range zones {
		total += z.Proportion
	}
	if total <= 0 {
		total = 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, width, bandHeight+40)
	fmt.Fprintf(&b, `<text x="10" y="20" font-family="sans-serif" font-size="14">Qualité des sols par zone</text>`)

	y := 30.0
	for _, z := range zones {
		h := z.Proportion / total * bandHeight
		fmt.Fprintf(&b, `<rect x="0" y="%.1f" width="%d" height="%.1f" fill="%s" stroke="#333"/>`,
			y, width, h, ScoreColor(z.Score))
		fmt.Fprintf(&b, `<text x="10" y="%.1f" font-family="sans-serif" font-size="12">%s (%.0f%%, %.1f/10)</text>`,
			y+h/2, escapeXML(z.Name), z.Proportion, z.Score)
		y += h
	}
	b.WriteString(`</svg>`)

	return g.writeSVG(resultID, SoilQualityMapFile, b.String())
}

// escapeXML escapes the few XML-significant characters in labels.
func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
