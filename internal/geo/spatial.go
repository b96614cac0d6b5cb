// Package geo retrieves OpenStreetMap features around a location and
// derives the spatial quantities the scorer consumes.
package geo

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
)

const earthRadiusM = 6371000

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

// BBox renders the bounds in Overpass "south,west,north,east" order.
func (b Bounds) BBox() string {
	return fmt.Sprintf("%f,%f,%f,%f", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// BoundsAround returns the box enclosing a circle of radiusM meters around
// the point.
func BoundsAround(lat, lon, radiusM float64) Bounds {
	dLat := radiusM / 111320
	dLon := radiusM / (111320 * math.Cos(lat*math.Pi/180))
	return Bounds{
		MinLat: lat - dLat,
		MinLon: lon - dLon,
		MaxLat: lat + dLat,
		MaxLon: lon + dLon,
	}
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// CircleArea returns the area in m² of a circle with the given radius.
func CircleArea(radiusM float64) float64 {
	return math.Pi * radiusM * radiusM
}

// CirclePolygon approximates the analysis circle as a closed polygon with
// the given number of segments.
func CirclePolygon(lat, lon, radiusM float64, segments int) *geom.Polygon {
	if segments < 3 {
		segments = 36
	}
	dLat := radiusM / 111320
	dLon := radiusM / (111320 * math.Cos(lat*math.Pi/180))

	coords := make([]float64, 0, (segments+1)*2)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		coords = append(coords, lon+dLon*math.Cos(theta), lat+dLat*math.Sin(theta))
	}
	return geom.NewPolygonFlat(geom.XY, coords, []int{len(coords)}).SetSRID(4326)
}

// RoadDensity divides total road length by the analyzed circle's area,
// yielding m/m².
func RoadDensity(totalLengthM, radiusM float64) float64 {
	area := CircleArea(radiusM)
	if area == 0 {
		return 0
	}
	return totalLengthM / area
}
