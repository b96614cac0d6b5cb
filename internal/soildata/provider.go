// Package soildata supplies soil properties for a sampled location, either
// from a soil-survey shapefile or from canned survey values.
package soildata

import (
	"context"

	"github.com/sells-group/geomarket/internal/model"
)

// Provider returns the soil properties at a point.
type Provider interface {
	Properties(ctx context.Context, lat, lon float64) (*model.SoilProperties, error)
}

// Static serves fixed survey values. It backs the mock path and acts as the
// fallback when no shapefile is configured.
type Static struct {
	props model.SoilProperties
}

// NewStatic returns a provider serving the stock loam-sand profile.
func NewStatic() *Static {
	return &Static{props: model.SoilProperties{
		Texture:        "limoneux-sableux",
		PH:             6.5,
		OrganicMatter:  2.8,
		Drainage:       "bon",
		Depth:          "profond (>60cm)",
		WaterRetention: "moyenne",
	}}
}

// Properties implements Provider.
func (s *Static) Properties(_ context.Context, _, _ float64) (*model.SoilProperties, error) {
	props := s.props
	return &props, nil
}
