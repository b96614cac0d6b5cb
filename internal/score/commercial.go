package score

// CommercialInputs are the observed quantities around a candidate location.
type CommercialInputs struct {
	// POICounts counts points of interest by category within the radius.
	POICounts map[string]int
	// RoadDensity is total road length divided by analyzed area, in m/m².
	RoadDensity float64
	// Competitors counts same-type businesses within the radius.
	Competitors int
}

// DefaultCommercialFactors returns the stock importance weights for the
// commercial global score.
func DefaultCommercialFactors() map[string]float64 {
	return map[string]float64{
		"population":    0.4,
		"competition":   0.3,
		"accessibility": 0.2,
		"visibility":    0.1,
	}
}

// Commercial scores a candidate commercial location. Factors should already
// carry defaults for any weight the caller did not set; missing keys count
// as zero weight.
func Commercial(in CommercialInputs, factors map[string]float64) Set {
	total := 0
	for _, n := range in.POICounts {
		total += n
	}

	sub := Set{
		"poi_score":         round1(cap10(float64(total) / 10)),
		"road_score":        round1(cap10(in.RoadDensity * 1000)),
		"competition_score": round1(floor0(10 - float64(in.Competitors))),
	}
	sub["global_score"] = CommercialGlobal(sub, factors)
	return sub
}

// CommercialGlobal combines commercial sub-scores into a global score using
// the named importance weights. Visibility has no dedicated observable, so
// it weights the mean of the POI and road sub-scores.
func CommercialGlobal(sub Set, factors map[string]float64) float64 {
	g := sub["poi_score"]*factors["population"] +
		sub["road_score"]*factors["accessibility"] +
		sub["competition_score"]*factors["competition"] +
		(sub["poi_score"]+sub["road_score"])/2*factors["visibility"]
	return round1(g)
}
