// Package advisor produces AI analysis narratives for scored locations and
// parses recommendations and zone records out of them. The narratives are
// free-form French text, so parsing is best-effort and never errors.
package advisor

import (
	"context"

	"github.com/sells-group/geomarket/internal/model"
)

// Advisor generates an analysis narrative for a scored location.
type Advisor interface {
	CommercialAdvice(ctx context.Context, in CommercialContext) (string, error)
	SoilAdvice(ctx context.Context, in SoilContext) (string, error)
}

// CommercialContext carries everything the advisor may reference for a
// commercial-location analysis.
type CommercialContext struct {
	Location     string
	BusinessType string
	Radius       float64
	Factors      map[string]float64
	Scores       map[string]float64
	POICounts    map[string]int
	RoadDensity  float64
	Competitors  int
}

// SoilContext carries everything the advisor may reference for a
// soil-quality analysis.
type SoilContext struct {
	Location   string
	CropType   string
	Depth      float64
	Factors    map[string]float64
	Scores     map[string]float64
	Properties model.SoilProperties
}
