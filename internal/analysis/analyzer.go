// Package analysis orchestrates the two end-to-end pipelines: geocoding,
// data collection, scoring, narrative generation, extraction, and
// visualization. Each pipeline has a synthetic path for development and a
// live path that falls back to synthetic data when a collaborator fails.
package analysis

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/model"
)

// Paris, used as the map center for synthetic analyses where no geocoding
// happens.
const (
	mockLat = 48.8566
	mockLon = 2.3522
)

// Synthetic observations for the mock commercial pipeline.
const (
	mockRoadDensity = 0.015
	mockCompetitors = 5
)

func mockPOICounts() map[string]int {
	return map[string]int{
		"pharmacy":    5,
		"hospital":    2,
		"school":      8,
		"supermarket": 6,
		"bus_stop":    15,
	}
}

// radiusFactor adjusts synthetic commercial sub-scores for the analysis
// radius. Tighter areas concentrate demand, wider ones dilute it.
func radiusFactor(radiusM float64) float64 {
	f := 1 + (500-radiusM)/1000
	return math.Max(0.8, math.Min(f, 1.2))
}

// depthFactor adjusts synthetic soil sub-scores for the sampling depth.
// Deeper profiles score slightly better.
func depthFactor(depthCm float64) float64 {
	f := 1 + (depthCm-30)/100
	return math.Max(0.9, math.Min(f, 1.1))
}

func newResult(t model.AnalysisType, location, subject string) *model.Result {
	return &model.Result{
		ID:        uuid.New().String(),
		Type:      t,
		CreatedAt: time.Now().UTC(),
		Location:  location,
		Subject:   subject,
	}
}

// recordFailure notes a non-fatal generation failure on the result instead
// of failing the request. The scores keep an "error" entry so clients can
// tell partial results apart from complete ones.
func recordFailure(res *model.Result, stage string, err error) {
	zap.L().Error("analysis: stage failed",
		zap.String("stage", stage),
		zap.String("result_id", res.ID),
		zap.Error(err))
	if res.Scores == nil {
		res.Scores = map[string]float64{}
	}
	res.Scores["error"] = 0
	res.Recommendations = append(res.Recommendations,
		"Une erreur est survenue pendant la génération d'une partie de l'analyse. Résultats partiels affichés.")
}
