package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/advisor"
	"github.com/sells-group/geomarket/internal/analysis"
	"github.com/sells-group/geomarket/internal/geo"
	"github.com/sells-group/geomarket/internal/soildata"
	"github.com/sells-group/geomarket/internal/viz"
	"github.com/sells-group/geomarket/pkg/deepseek"
	"github.com/sells-group/geomarket/pkg/geocode"
)

// analyzerEnv bundles the wired analyzers and the resources they own.
type analyzerEnv struct {
	commercial *analysis.CommercialAnalyzer
	soil       *analysis.SoilAnalyzer
	vizRoot    string
	cache      *geocode.SQLiteCache
}

func (e *analyzerEnv) Close() {
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			zap.L().Warn("close geocode cache", zap.Error(err))
		}
	}
}

// initAnalyzers builds both analysis pipelines from the loaded config. Live
// collaborators are only constructed when the mock path is disabled.
func initAnalyzers() (*analyzerEnv, error) {
	adv, err := newAdvisor()
	if err != nil {
		return nil, err
	}

	env := &analyzerEnv{vizRoot: cfg.Viz.OutputDir}
	gen := viz.NewGenerator(cfg.Viz.OutputDir)
	useMock := cfg.Analysis.UseMock

	var geocoder geocode.Client
	var features geo.FeatureRepository
	var soil soildata.Provider = soildata.NewStatic()

	if !useMock {
		cache, err := geocode.NewSQLiteCache(cfg.Geocode.CachePath, cfg.Geocode.CacheTTLDays)
		if err != nil {
			return nil, eris.Wrap(err, "cmd: open geocode cache")
		}
		env.cache = cache

		geocoder = geocode.NewClient(
			geocode.WithBaseURL(cfg.Geocode.BaseURL),
			geocode.WithUserAgent(cfg.Geocode.UserAgent),
			geocode.WithRateLimit(cfg.Geocode.RateLimitRPS),
			geocode.WithCache(cache),
		)
		features = geo.NewOverpassRepository(cfg.Overpass.URL, time.Duration(cfg.Overpass.TimeoutSecs)*time.Second)
		if cfg.Soil.ShapefilePath != "" {
			soil = soildata.NewShapefileProvider(cfg.Soil.ShapefilePath)
		}
	}

	env.commercial = analysis.NewCommercialAnalyzer(geocoder, features, adv, gen, cfg.Commercial, useMock)
	env.soil = analysis.NewSoilAnalyzer(geocoder, soil, adv, gen, cfg.SoilScore, useMock)
	return env, nil
}

func newAdvisor() (advisor.Advisor, error) {
	switch cfg.Analysis.AdvisorProvider {
	case "", "mock":
		return advisor.NewMock(), nil
	case "deepseek":
		if cfg.DeepSeek.Key == "" {
			return nil, eris.New("cmd: deepseek.key is required for the deepseek advisor")
		}
		client := deepseek.NewClient(cfg.DeepSeek.Key,
			deepseek.WithBaseURL(cfg.DeepSeek.BaseURL),
			deepseek.WithModel(cfg.DeepSeek.Model),
		)
		return advisor.NewDeepSeek(client), nil
	case "anthropic":
		if cfg.Anthropic.Key == "" {
			return nil, eris.New("cmd: anthropic.key is required for the anthropic advisor")
		}
		return advisor.NewAnthropic(cfg.Anthropic.Key, cfg.Anthropic.Model), nil
	default:
		return nil, eris.Errorf("cmd: unknown advisor provider %q", cfg.Analysis.AdvisorProvider)
	}
}
