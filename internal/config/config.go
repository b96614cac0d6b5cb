package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Analysis   AnalysisConfig   `yaml:"analysis" mapstructure:"analysis"`
	Geocode    GeocodeConfig    `yaml:"geocode" mapstructure:"geocode"`
	Overpass   OverpassConfig   `yaml:"overpass" mapstructure:"overpass"`
	Soil       SoilConfig       `yaml:"soil" mapstructure:"soil"`
	Viz        VizConfig        `yaml:"viz" mapstructure:"viz"`
	DeepSeek   DeepSeekConfig   `yaml:"deepseek" mapstructure:"deepseek"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Commercial CommercialConfig `yaml:"commercial" mapstructure:"commercial"`
	SoilScore  SoilScoreConfig  `yaml:"soil_score" mapstructure:"soil_score"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AnalysisConfig selects how analyses are produced.
type AnalysisConfig struct {
	// UseMock forces the synthetic data path even when live collaborators
	// are configured.
	UseMock bool `yaml:"use_mock" mapstructure:"use_mock"`
	// AdvisorProvider is one of "mock", "deepseek", "anthropic".
	AdvisorProvider string `yaml:"advisor_provider" mapstructure:"advisor_provider"`
}

// GeocodeConfig holds Nominatim geocoding settings.
type GeocodeConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	CachePath    string  `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTLDays int     `yaml:"cache_ttl_days" mapstructure:"cache_ttl_days"`
}

// OverpassConfig holds Overpass API settings.
type OverpassConfig struct {
	URL         string `yaml:"url" mapstructure:"url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// SoilConfig configures the soil-survey data source.
type SoilConfig struct {
	ShapefilePath string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
}

// VizConfig configures visualization artifact output.
type VizConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// DeepSeekConfig holds DeepSeek API settings.
type DeepSeekConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// CommercialConfig holds commercial-analysis defaults, including the
// importance weights applied when a request omits them.
type CommercialConfig struct {
	DefaultRadius float64           `yaml:"default_radius" mapstructure:"default_radius"`
	Factors       CommercialFactors `yaml:"factors" mapstructure:"factors"`
}

// CommercialFactors weights the commercial sub-scores in the global score.
type CommercialFactors struct {
	Population    float64 `yaml:"population" mapstructure:"population"`
	Competition   float64 `yaml:"competition" mapstructure:"competition"`
	Accessibility float64 `yaml:"accessibility" mapstructure:"accessibility"`
	Visibility    float64 `yaml:"visibility" mapstructure:"visibility"`
}

// Map returns the factors as a named weight map.
func (f CommercialFactors) Map() map[string]float64 {
	return map[string]float64{
		"population":    f.Population,
		"competition":   f.Competition,
		"accessibility": f.Accessibility,
		"visibility":    f.Visibility,
	}
}

// SoilScoreConfig holds soil-analysis defaults.
type SoilScoreConfig struct {
	DefaultDepth float64     `yaml:"default_depth" mapstructure:"default_depth"`
	Factors      SoilFactors `yaml:"factors" mapstructure:"factors"`
}

// SoilFactors weights the soil sub-scores in the global score.
type SoilFactors struct {
	PH            float64 `yaml:"ph" mapstructure:"ph"`
	Drainage      float64 `yaml:"drainage" mapstructure:"drainage"`
	Texture       float64 `yaml:"texture" mapstructure:"texture"`
	OrganicMatter float64 `yaml:"organic_matter" mapstructure:"organic_matter"`
}

// Map returns the factors as a named weight map.
func (f SoilFactors) Map() map[string]float64 {
	return map[string]float64{
		"ph":             f.PH,
		"drainage":       f.Drainage,
		"texture":        f.Texture,
		"organic_matter": f.OrganicMatter,
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("analysis.use_mock", true)
	v.SetDefault("analysis.advisor_provider", "mock")
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "geomarket/1.0")
	v.SetDefault("geocode.rate_limit_rps", 1.0)
	v.SetDefault("geocode.cache_path", "geocode_cache.db")
	v.SetDefault("geocode.cache_ttl_days", 30)
	v.SetDefault("overpass.url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.timeout_secs", 25)
	v.SetDefault("viz.output_dir", "static/visualizations")
	v.SetDefault("deepseek.base_url", "https://api.deepseek.com")
	v.SetDefault("deepseek.model", "deepseek-chat")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("commercial.default_radius", 500)
	v.SetDefault("commercial.factors.population", 0.4)
	v.SetDefault("commercial.factors.competition", 0.3)
	v.SetDefault("commercial.factors.accessibility", 0.2)
	v.SetDefault("commercial.factors.visibility", 0.1)
	v.SetDefault("soil_score.default_depth", 30)
	v.SetDefault("soil_score.factors.ph", 0.3)
	v.SetDefault("soil_score.factors.drainage", 0.3)
	v.SetDefault("soil_score.factors.texture", 0.2)
	v.SetDefault("soil_score.factors.organic_matter", 0.2)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
