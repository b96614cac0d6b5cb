package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	// Notre-Dame to the Louvre, roughly 1.5 km.
	d := Haversine(48.8530, 2.3499, 48.8606, 2.3376)
	assert.InDelta(t, 1230, d, 100)

	assert.Zero(t, Haversine(48.85, 2.35, 48.85, 2.35))
}

func TestBoundsAround(t *testing.T) {
	b := BoundsAround(48.85, 2.35, 500)

	assert.Less(t, b.MinLat, 48.85)
	assert.Greater(t, b.MaxLat, 48.85)
	assert.Less(t, b.MinLon, 2.35)
	assert.Greater(t, b.MaxLon, 2.35)

	// Opposite corners should be roughly two radii apart on each axis.
	height := Haversine(b.MinLat, 2.35, b.MaxLat, 2.35)
	assert.InDelta(t, 1000, height, 20)

	assert.Contains(t, b.BBox(), ",")
}

func TestRoadDensity(t *testing.T) {
	// 11.78 km of road in a 500 m circle is the mock's 0.015 m/m².
	density := RoadDensity(11780, 500)
	assert.InDelta(t, 0.015, density, 0.001)

	assert.Zero(t, RoadDensity(1000, 0))
}

func TestCirclePolygon(t *testing.T) {
	poly := CirclePolygon(48.85, 2.35, 500, 36)

	ring := poly.LinearRing(0)
	first := ring.Coord(0)
	last := ring.Coord(ring.NumCoords() - 1)
	assert.Equal(t, first, last, "ring must close")
	assert.Equal(t, 4326, poly.SRID())
}

func TestCountByCategory(t *testing.T) {
	pois := []POI{
		{Category: "pharmacy"},
		{Category: "pharmacy"},
		{Category: "school"},
	}
	counts := CountByCategory(pois)
	assert.Equal(t, map[string]int{"pharmacy": 2, "school": 1}, counts)
}

func TestCountCompetitors(t *testing.T) {
	pois := []POI{
		{Category: "pharmacy"},
		{Category: "pharmacy"},
		{Category: "bakery"},
	}

	assert.Equal(t, 2, CountCompetitors(pois, "pharmacie"))
	assert.Equal(t, 2, CountCompetitors(pois, " Pharmacie "))
	assert.Equal(t, 1, CountCompetitors(pois, "boulangerie"))
	// Unknown types fall back to the lowercased literal.
	assert.Equal(t, 1, CountCompetitors(pois, "Bakery"))
	assert.Equal(t, 0, CountCompetitors(pois, "fleuriste"))
}
