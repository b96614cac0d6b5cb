package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/geomarket/internal/model"
)

func TestSoil(t *testing.T) {
	tests := []struct {
		name    string
		props   model.SoilProperties
		factors map[string]float64
		want    Set
	}{
		{
			name: "balanced loam-sand",
			props: model.SoilProperties{
				Texture:       "limoneux-sableux",
				PH:            6.5,
				OrganicMatter: 2.8,
				Drainage:      "bon",
			},
			factors: DefaultSoilFactors(),
			want: Set{
				"ph_score":       9.3, // 10 - |6.5-6.75|*3 = 9.25, rounds half away
				"drainage_score": 9,
				"texture_score":  8,
				"organic_score":  5.6,
				// 9.3*0.3 + 9*0.3 + 8*0.2 + 5.6*0.2
				"global_score": 8.2,
			},
		},
		{
			name: "acidic clay with poor drainage",
			props: model.SoilProperties{
				Texture:       "argileux",
				PH:            4.0,
				OrganicMatter: 1.0,
				Drainage:      "faible",
			},
			factors: DefaultSoilFactors(),
			want: Set{
				"ph_score":       1.8, // 10 - min(2.75*3, 10) = 10 - 8.25
				"drainage_score": 3,
				"texture_score":  5,
				"organic_score":  2.0,
				"global_score":   2.8,
			},
		},
		{
			name: "unknown drainage gets midline",
			props: model.SoilProperties{
				Texture:       "sableux-limoneux",
				PH:            6.75,
				OrganicMatter: 9.0,
				Drainage:      "inconnu",
			},
			factors: DefaultSoilFactors(),
			want: Set{
				"ph_score":       10,
				"drainage_score": 5,
				"texture_score":  8,
				"organic_score":  10,
				"global_score":   8.1,
			},
		},
		{
			name:    "zero-value properties",
			props:   model.SoilProperties{},
			factors: DefaultSoilFactors(),
			want: Set{
				"ph_score":       0, // pH 0 is 6.75 away, capped penalty
				"drainage_score": 5,
				"texture_score":  5,
				"organic_score":  0,
				"global_score":   2.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Soil(tt.props, tt.factors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSoilSubScoresNeverExceedTen(t *testing.T) {
	weightMaps := []map[string]float64{
		DefaultSoilFactors(),
		{"ph": 5, "drainage": 5, "texture": 5, "organic_matter": 5},
		{},
	}
	props := model.SoilProperties{
		Texture:       "limoneux-sableux",
		PH:            14,
		OrganicMatter: 80,
		Drainage:      "bon",
	}
	for _, factors := range weightMaps {
		got := Soil(props, factors)
		for name, v := range got {
			if name == "global_score" {
				continue
			}
			assert.LessOrEqual(t, v, 10.0, "sub-score %s", name)
			assert.GreaterOrEqual(t, v, 0.0, "sub-score %s", name)
		}
	}
}

func TestSoilGlobalMatchesWeightedSum(t *testing.T) {
	sub := Set{"ph_score": 8.5, "drainage_score": 9.0, "texture_score": 8.0, "organic_score": 7.6}

	got := SoilGlobal(sub, DefaultSoilFactors())

	// 8.5*0.3 + 9.0*0.3 + 8.0*0.2 + 7.6*0.2 = 8.37, rounds to 8.4.
	assert.Equal(t, 8.4, got)
}
