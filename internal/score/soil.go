package score

import (
	"math"
	"strings"

	"github.com/sells-group/geomarket/internal/model"
)

// Ideal pH for general cultivation, midpoint of the 6.0-7.5 window.
const idealPH = 6.75

// DefaultSoilFactors returns the stock importance weights for the soil
// global score.
func DefaultSoilFactors() map[string]float64 {
	return map[string]float64{
		"ph":             0.3,
		"drainage":       0.3,
		"texture":        0.2,
		"organic_matter": 0.2,
	}
}

var drainageScores = map[string]float64{
	"bon":    9,
	"moyen":  6,
	"faible": 3,
}

// Soil scores soil properties for cultivation. Factors should already carry
// defaults for any weight the caller did not set; missing keys count as
// zero weight.
func Soil(props model.SoilProperties, factors map[string]float64) Set {
	sub := Set{
		"ph_score":       round1(10 - math.Min(math.Abs(props.PH-idealPH)*3, 10)),
		"drainage_score": drainageScore(props.Drainage),
		"texture_score":  textureScore(props.Texture),
		"organic_score":  round1(cap10(props.OrganicMatter * 2)),
	}
	sub["global_score"] = SoilGlobal(sub, factors)
	return sub
}

// SoilGlobal combines soil sub-scores into a global score using the named
// importance weights.
func SoilGlobal(sub Set, factors map[string]float64) float64 {
	g := sub["ph_score"]*factors["ph"] +
		sub["drainage_score"]*factors["drainage"] +
		sub["texture_score"]*factors["texture"] +
		sub["organic_score"]*factors["organic_matter"]
	return round1(g)
}

func drainageScore(drainage string) float64 {
	if s, ok := drainageScores[strings.ToLower(strings.TrimSpace(drainage))]; ok {
		return s
	}
	return 5
}

// Loam-sand mixes score best; anything else gets the midline.
func textureScore(texture string) float64 {
	t := strings.ToLower(texture)
	if strings.Contains(t, "limoneux") && strings.Contains(t, "sableux") {
		return 8
	}
	return 5
}
