package model

import (
	"strings"
	"time"
)

// AnalysisType distinguishes the two analysis domains.
type AnalysisType string

const (
	AnalysisCommercial AnalysisType = "commercial"
	AnalysisSoil       AnalysisType = "soil"
)

// Parameters carries the tunable knobs of an analysis request.
type Parameters struct {
	Radius            float64            `json:"radius,omitempty" yaml:"radius"`
	Depth             float64            `json:"depth,omitempty" yaml:"depth"`
	ImportanceFactors map[string]float64 `json:"importance_factors,omitempty" yaml:"importance_factors"`
}

// CommercialRequest is the body of a commercial-location analysis request.
type CommercialRequest struct {
	Location     string     `json:"location" yaml:"location"`
	BusinessType string     `json:"business_type" yaml:"business_type"`
	Parameters   Parameters `json:"parameters" yaml:"parameters"`
}

// SoilRequest is the body of a soil-quality analysis request.
type SoilRequest struct {
	Location   string     `json:"location" yaml:"location"`
	CropType   string     `json:"crop_type" yaml:"crop_type"`
	Parameters Parameters `json:"parameters" yaml:"parameters"`
}

// SoilProperties describes the soil at a sampled location.
type SoilProperties struct {
	Texture       string  `json:"texture"`
	PH            float64 `json:"ph"`
	OrganicMatter float64 `json:"organic_matter"`
	Drainage      string  `json:"drainage"`
	Depth         string  `json:"depth,omitempty"`
	WaterRetention string `json:"water_retention,omitempty"`
}

// Zone is a sub-area of the analyzed parcel with its own suitability profile.
type Zone struct {
	Name            string   `json:"name"`
	Proportion      float64  `json:"proportion,omitempty"`
	Score           float64  `json:"score,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// Result is the outcome of one analysis request. Results live only for the
// request/response cycle; nothing is persisted.
type Result struct {
	ID              string             `json:"result_id"`
	Type            AnalysisType       `json:"analysis_type"`
	CreatedAt       time.Time          `json:"created_at"`
	Location        string             `json:"location"`
	Subject         string             `json:"subject"`
	Scores          map[string]float64 `json:"scores"`
	Recommendations []string           `json:"recommendations"`
	Zones           []Zone             `json:"zones,omitempty"`
	Visualizations  map[string]string  `json:"visualizations,omitempty"`
	RawData         map[string]any     `json:"raw_data,omitempty"`
	Degraded        bool               `json:"degraded"`
	DegradedReason  string             `json:"degraded_reason,omitempty"`
}

// RewriteVisualizations maps filesystem artifact paths under fsRoot to
// web-servable URLs under urlPrefix.
func (r *Result) RewriteVisualizations(fsRoot, urlPrefix string) {
	if len(r.Visualizations) == 0 {
		return
	}
	fsRoot = strings.TrimSuffix(fsRoot, "/")
	urlPrefix = strings.TrimSuffix(urlPrefix, "/")
	rewritten := make(map[string]string, len(r.Visualizations))
	for name, path := range r.Visualizations {
		rel := strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), fsRoot)
		rewritten[name] = urlPrefix + "/" + strings.TrimPrefix(rel, "/")
	}
	r.Visualizations = rewritten
}
