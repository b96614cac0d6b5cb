package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommercial(t *testing.T) {
	tests := []struct {
		name    string
		in      CommercialInputs
		factors map[string]float64
		want    Set
	}{
		{
			name: "typical urban block",
			in: CommercialInputs{
				POICounts:   map[string]int{"pharmacy": 5, "school": 8, "supermarket": 6, "bus_stop": 15, "hospital": 2},
				RoadDensity: 0.0072,
				Competitors: 5,
			},
			factors: DefaultCommercialFactors(),
			want: Set{
				"poi_score":         3.6,
				"road_score":        7.2,
				"competition_score": 5.0,
				// 3.6*0.4 + 7.2*0.2 + 5.0*0.3 + 5.4*0.1
				"global_score": 4.9,
			},
		},
		{
			name:    "empty area",
			in:      CommercialInputs{},
			factors: DefaultCommercialFactors(),
			want: Set{
				"poi_score":         0,
				"road_score":        0,
				"competition_score": 10,
				"global_score":      3.0,
			},
		},
		{
			name: "saturated inputs cap at ten",
			in: CommercialInputs{
				POICounts:   map[string]int{"shop": 900},
				RoadDensity: 4.2,
				Competitors: 0,
			},
			factors: DefaultCommercialFactors(),
			want: Set{
				"poi_score":         10,
				"road_score":        10,
				"competition_score": 10,
				"global_score":      10.0,
			},
		},
		{
			name: "crowded market floors competition at zero",
			in: CommercialInputs{
				POICounts:   map[string]int{"shop": 40},
				RoadDensity: 0.003,
				Competitors: 25,
			},
			factors: DefaultCommercialFactors(),
			want: Set{
				"poi_score":         4.0,
				"road_score":        3.0,
				"competition_score": 0,
				"global_score":      2.6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Commercial(tt.in, tt.factors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommercialSubScoresNeverExceedTen(t *testing.T) {
	weightMaps := []map[string]float64{
		DefaultCommercialFactors(),
		{"population": 3, "competition": 3, "accessibility": 3, "visibility": 3},
		{"population": -1, "visibility": 0.5},
		{},
	}
	in := CommercialInputs{
		POICounts:   map[string]int{"a": 5000, "b": 12000},
		RoadDensity: 99,
		Competitors: 0,
	}
	for _, factors := range weightMaps {
		got := Commercial(in, factors)
		for name, v := range got {
			if name == "global_score" {
				continue
			}
			assert.LessOrEqual(t, v, 10.0, "sub-score %s with factors %v", name, factors)
			assert.GreaterOrEqual(t, v, 0.0, "sub-score %s with factors %v", name, factors)
		}
	}
}

func TestCommercialGlobalMatchesWeightedSum(t *testing.T) {
	sub := Set{"poi_score": 8.5, "road_score": 7.2, "competition_score": 5.0}

	got := CommercialGlobal(sub, DefaultCommercialFactors())

	// 8.5*0.4 + 7.2*0.2 + 5.0*0.3 + 7.85*0.1 = 7.125, rounds to 7.1.
	assert.Equal(t, 7.1, got)
}

func TestCommercialGlobalAdversarialWeightsNotClamped(t *testing.T) {
	sub := Set{"poi_score": 10, "road_score": 10, "competition_score": 10}
	got := CommercialGlobal(sub, map[string]float64{
		"population": 2, "competition": 2, "accessibility": 2, "visibility": 2,
	})
	assert.Equal(t, 80.0, got)
}

func TestMergeFactors(t *testing.T) {
	merged := MergeFactors(DefaultCommercialFactors(), map[string]float64{
		"population": 0.7,
		"footfall":   0.2,
	})

	assert.Equal(t, 0.7, merged["population"])
	assert.Equal(t, 0.3, merged["competition"])
	assert.Equal(t, 0.2, merged["footfall"])
}
