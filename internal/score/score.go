// Package score computes location suitability scores from observed inputs
// and named importance weights. Sub-scores are clamped to [0,10] and rounded
// to one decimal. The global score is a plain weighted sum and is not
// re-normalized, so weights summing above 1 can push it past 10.
package score

import "math"

// Set maps score names to values. Sub-score entries are in [0,10]; the
// "global_score" entry is the weighted combination.
type Set map[string]float64

// Global returns the set's global score, or 0 when absent.
func (s Set) Global() float64 {
	return s["global_score"]
}

// MergeFactors overlays caller-supplied weights on the defaults. Unknown
// override keys are kept so callers can weight custom sub-scores.
func MergeFactors(defaults, overrides map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Scale multiplies a base sub-score by an adjustment factor, capping at 10
// and rounding to one decimal.
func Scale(base, factor float64) float64 {
	return round1(cap10(base * factor))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func cap10(v float64) float64 {
	return math.Min(v, 10)
}

func floor0(v float64) float64 {
	return math.Max(v, 0)
}
