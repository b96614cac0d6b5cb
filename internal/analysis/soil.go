package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/advisor"
	"github.com/sells-group/geomarket/internal/config"
	"github.com/sells-group/geomarket/internal/model"
	"github.com/sells-group/geomarket/internal/score"
	"github.com/sells-group/geomarket/internal/soildata"
	"github.com/sells-group/geomarket/internal/viz"
	"github.com/sells-group/geomarket/pkg/geocode"
)

// SoilAnalyzer runs soil-quality analyses.
type SoilAnalyzer struct {
	geocoder geocode.Client
	soil     soildata.Provider
	adv      advisor.Advisor
	viz      *viz.Generator
	cfg      config.SoilScoreConfig
	useMock  bool
}

// NewSoilAnalyzer wires the soil pipeline. When useMock is set, the live
// collaborators may be nil.
func NewSoilAnalyzer(
	geocoder geocode.Client,
	soil soildata.Provider,
	adv advisor.Advisor,
	gen *viz.Generator,
	cfg config.SoilScoreConfig,
	useMock bool,
) *SoilAnalyzer {
	return &SoilAnalyzer{
		geocoder: geocoder,
		soil:     soil,
		adv:      adv,
		viz:      gen,
		cfg:      cfg,
		useMock:  useMock,
	}
}

// Analyze produces a soil-quality result. A live pipeline failure is not an
// error for the caller: the analyzer falls back to synthetic data and marks
// the result degraded.
func (a *SoilAnalyzer) Analyze(ctx context.Context, req model.SoilRequest) (*model.Result, error) {
	depth := req.Parameters.Depth
	if depth <= 0 {
		depth = a.cfg.DefaultDepth
	}
	factors := score.MergeFactors(a.cfg.Factors.Map(), req.Parameters.ImportanceFactors)

	if a.useMock {
		return a.mock(ctx, req, depth, factors), nil
	}

	res, err := a.live(ctx, req, depth, factors)
	if err != nil {
		zap.L().Warn("analysis: live soil pipeline failed, serving synthetic result",
			zap.String("location", req.Location),
			zap.Error(err))
		res = a.mock(ctx, req, depth, factors)
		res.Degraded = true
		res.DegradedReason = err.Error()
	}
	return res, nil
}

func (a *SoilAnalyzer) mock(ctx context.Context, req model.SoilRequest, depth float64, factors map[string]float64) *model.Result {
	res := newResult(model.AnalysisSoil, req.Location, req.CropType)

	df := depthFactor(depth)
	scores := score.Set{
		"ph_score":       score.Scale(8.5, df),
		"drainage_score": score.Scale(9.0, df),
		"texture_score":  score.Scale(8.0, df),
		"organic_score":  score.Scale(7.6, df),
	}
	scores["global_score"] = score.SoilGlobal(scores, factors)
	res.Scores = scores

	props, _ := soildata.NewStatic().Properties(ctx, mockLat, mockLon)
	res.RawData = map[string]any{"soil_properties": props}

	advice, err := advisor.NewMock().SoilAdvice(ctx, advisor.SoilContext{
		Location:   req.Location,
		CropType:   req.CropType,
		Depth:      depth,
		Factors:    factors,
		Scores:     scores,
		Properties: *props,
	})
	if err != nil {
		recordFailure(res, "soil advice", err)
	} else {
		res.Recommendations = advisor.ExtractRecommendations(advice)
		res.Zones = advisor.ExtractZones(advice)
		res.RawData["analysis"] = advice
	}

	a.attachVisualizations(res, mockLat, mockLon)
	return res
}

func (a *SoilAnalyzer) live(ctx context.Context, req model.SoilRequest, depth float64, factors map[string]float64) (*model.Result, error) {
	loc, err := a.geocoder.Geocode(ctx, req.Location)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: geocode location")
	}
	if !loc.Matched {
		return nil, eris.Errorf("analysis: no match for location %q", req.Location)
	}

	props, err := a.soil.Properties(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: read soil survey")
	}

	res := newResult(model.AnalysisSoil, req.Location, req.CropType)
	res.Scores = score.Soil(*props, factors)
	res.RawData = map[string]any{
		"display_name":    loc.DisplayName,
		"latitude":        loc.Latitude,
		"longitude":       loc.Longitude,
		"soil_properties": props,
	}

	advice, err := a.adv.SoilAdvice(ctx, advisor.SoilContext{
		Location:   req.Location,
		CropType:   req.CropType,
		Depth:      depth,
		Factors:    factors,
		Scores:     res.Scores,
		Properties: *props,
	})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: generate soil advice")
	}
	res.Recommendations = advisor.ExtractRecommendations(advice)
	res.Zones = advisor.ExtractZones(advice)
	res.RawData["analysis"] = advice

	a.attachVisualizations(res, loc.Latitude, loc.Longitude)
	return res, nil
}

func (a *SoilAnalyzer) attachVisualizations(res *model.Result, lat, lon float64) {
	res.Visualizations = map[string]string{}
	if path, err := a.viz.SoilMap(res.ID, lat, lon, res.Zones); err != nil {
		recordFailure(res, "soil map", err)
	} else {
		res.Visualizations["map"] = path
	}
	if path, err := a.viz.SoilQualityMap(res.ID, res.Zones); err != nil {
		recordFailure(res, "quality map", err)
	} else {
		res.Visualizations["quality_map"] = path
	}
}
