package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/advisor"
	"github.com/sells-group/geomarket/internal/config"
	"github.com/sells-group/geomarket/internal/geo"
	"github.com/sells-group/geomarket/internal/model"
	"github.com/sells-group/geomarket/internal/score"
	"github.com/sells-group/geomarket/internal/viz"
	"github.com/sells-group/geomarket/pkg/geocode"
)

// CommercialAnalyzer runs commercial-location analyses.
type CommercialAnalyzer struct {
	geocoder geocode.Client
	features geo.FeatureRepository
	adv      advisor.Advisor
	viz      *viz.Generator
	cfg      config.CommercialConfig
	useMock  bool
}

// NewCommercialAnalyzer wires the commercial pipeline. When useMock is set,
// the live collaborators may be nil.
func NewCommercialAnalyzer(
	geocoder geocode.Client,
	features geo.FeatureRepository,
	adv advisor.Advisor,
	gen *viz.Generator,
	cfg config.CommercialConfig,
	useMock bool,
) *CommercialAnalyzer {
	return &CommercialAnalyzer{
		geocoder: geocoder,
		features: features,
		adv:      adv,
		viz:      gen,
		cfg:      cfg,
		useMock:  useMock,
	}
}

// Analyze produces a commercial-location result. A live pipeline failure is
// not an error for the caller: the analyzer falls back to synthetic data and
// marks the result degraded.
func (a *CommercialAnalyzer) Analyze(ctx context.Context, req model.CommercialRequest) (*model.Result, error) {
	radius := req.Parameters.Radius
	if radius <= 0 {
		radius = a.cfg.DefaultRadius
	}
	factors := score.MergeFactors(a.cfg.Factors.Map(), req.Parameters.ImportanceFactors)

	if a.useMock {
		return a.mock(ctx, req, radius, factors), nil
	}

	res, err := a.live(ctx, req, radius, factors)
	if err != nil {
		zap.L().Warn("analysis: live commercial pipeline failed, serving synthetic result",
			zap.String("location", req.Location),
			zap.Error(err))
		res = a.mock(ctx, req, radius, factors)
		res.Degraded = true
		res.DegradedReason = err.Error()
	}
	return res, nil
}

func (a *CommercialAnalyzer) mock(ctx context.Context, req model.CommercialRequest, radius float64, factors map[string]float64) *model.Result {
	res := newResult(model.AnalysisCommercial, req.Location, req.BusinessType)

	rf := radiusFactor(radius)
	scores := score.Set{
		"poi_score":         score.Scale(8.5, rf),
		"road_score":        score.Scale(7.2, rf),
		"competition_score": score.Scale(5.0, rf),
	}
	scores["global_score"] = score.CommercialGlobal(scores, factors)
	res.Scores = scores

	counts := mockPOICounts()
	res.RawData = map[string]any{
		"poi_counts":   counts,
		"road_density": mockRoadDensity,
		"competitors":  mockCompetitors,
	}

	advice, err := advisor.NewMock().CommercialAdvice(ctx, advisor.CommercialContext{
		Location:     req.Location,
		BusinessType: req.BusinessType,
		Radius:       radius,
		Factors:      factors,
		Scores:       scores,
		POICounts:    counts,
		RoadDensity:  mockRoadDensity,
		Competitors:  mockCompetitors,
	})
	if err != nil {
		recordFailure(res, "commercial advice", err)
	} else {
		res.Recommendations = advisor.ExtractRecommendations(advice)
		res.RawData["analysis"] = advice
	}

	a.attachVisualizations(res, mockLat, mockLon, radius, nil)
	return res
}

func (a *CommercialAnalyzer) live(ctx context.Context, req model.CommercialRequest, radius float64, factors map[string]float64) (*model.Result, error) {
	loc, err := a.geocoder.Geocode(ctx, req.Location)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: geocode location")
	}
	if !loc.Matched {
		return nil, eris.Errorf("analysis: no match for location %q", req.Location)
	}

	pois, err := a.features.POIs(ctx, loc.Latitude, loc.Longitude, radius)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: collect points of interest")
	}
	roads, err := a.features.Roads(ctx, loc.Latitude, loc.Longitude, radius)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: collect road network")
	}

	counts := geo.CountByCategory(pois)
	density := geo.RoadDensity(geo.TotalLength(roads), radius)
	competitors := geo.CountCompetitors(pois, req.BusinessType)

	res := newResult(model.AnalysisCommercial, req.Location, req.BusinessType)
	res.Scores = score.Commercial(score.CommercialInputs{
		POICounts:   counts,
		RoadDensity: density,
		Competitors: competitors,
	}, factors)
	res.RawData = map[string]any{
		"display_name": loc.DisplayName,
		"latitude":     loc.Latitude,
		"longitude":    loc.Longitude,
		"poi_counts":   counts,
		"road_density": density,
		"competitors":  competitors,
	}

	advice, err := a.adv.CommercialAdvice(ctx, advisor.CommercialContext{
		Location:     req.Location,
		BusinessType: req.BusinessType,
		Radius:       radius,
		Factors:      factors,
		Scores:       res.Scores,
		POICounts:    counts,
		RoadDensity:  density,
		Competitors:  competitors,
	})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: generate commercial advice")
	}
	res.Recommendations = advisor.ExtractRecommendations(advice)
	res.RawData["analysis"] = advice

	a.attachVisualizations(res, loc.Latitude, loc.Longitude, radius, pois)
	return res, nil
}

func (a *CommercialAnalyzer) attachVisualizations(res *model.Result, lat, lon, radius float64, pois []geo.POI) {
	res.Visualizations = map[string]string{}
	if path, err := a.viz.CommercialMap(res.ID, lat, lon, radius, pois); err != nil {
		recordFailure(res, "location map", err)
	} else {
		res.Visualizations["map"] = path
	}
	if path, err := a.viz.CommercialHeatmap(res.ID, res.Scores); err != nil {
		recordFailure(res, "heatmap", err)
	} else {
		res.Visualizations["heatmap"] = path
	}
}
