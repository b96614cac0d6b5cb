package soildata

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/model"
)

// ShapefileProvider looks up soil properties in a soil-survey shapefile of
// polygons carrying texture/ph/om/drainage attributes.
type ShapefileProvider struct {
	path string
}

// NewShapefileProvider creates a provider reading from the given .shp path.
func NewShapefileProvider(path string) *ShapefileProvider {
	return &ShapefileProvider{path: path}
}

// Attribute aliases accepted in survey shapefiles.
var (
	textureFields  = []string{"texture", "tex"}
	phFields       = []string{"ph", "ph_eau"}
	organicFields  = []string{"om", "org_mat", "organic", "mat_org"}
	drainageFields = []string{"drainage", "drain"}
)

// Properties implements Provider. It returns the attributes of the first
// polygon containing the point, or a not-found error when the point falls
// outside the survey.
func (p *ShapefileProvider) Properties(ctx context.Context, lat, lon float64) (*model.SoilProperties, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := shp.Open(p.path)
	if err != nil {
		return nil, eris.Wrapf(err, "soildata: open shapefile %s", p.path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			continue
		}
		if !polygonContains(poly, lon, lat) {
			continue
		}

		props := &model.SoilProperties{
			Texture:       p.attribute(reader, fieldIdx, textureFields),
			Drainage:      p.attribute(reader, fieldIdx, drainageFields),
			PH:            parseFloat(p.attribute(reader, fieldIdx, phFields)),
			OrganicMatter: parseFloat(p.attribute(reader, fieldIdx, organicFields)),
		}
		zap.L().Debug("soildata: survey polygon matched",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("texture", props.Texture),
		)
		return props, nil
	}

	return nil, eris.Errorf("soildata: no survey polygon contains %f,%f", lat, lon)
}

func (p *ShapefileProvider) attribute(reader *shp.Reader, fieldIdx map[string]int, names []string) string {
	for _, name := range names {
		if idx, ok := fieldIdx[name]; ok {
			return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
		}
	}
	return ""
}

// polygonContains tests the point against each part ring. Holes are not
// distinguished; survey polygons in practice carry none.
func polygonContains(poly *shp.Polygon, x, y float64) bool {
	numParts := int(poly.NumParts)
	for i := 0; i < numParts; i++ {
		start := poly.Parts[i]
		end := int32(len(poly.Points))
		if i+1 < numParts {
			end = poly.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, poly.Points[j].X, poly.Points[j].Y)
		}
		if xy.IsPointInRing(geom.XY, geom.Coord{x, y}, flat) {
			return true
		}
	}
	return false
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
