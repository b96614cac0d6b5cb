package analysis

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/sells-group/geomarket/internal/model"
)

//go:embed examples.yaml
var examplesYAML []byte

type exampleSet struct {
	Commercial []model.CommercialRequest `yaml:"commercial"`
	Soil       []model.SoilRequest       `yaml:"soil"`
}

var examples = mustLoadExamples()

func mustLoadExamples() exampleSet {
	var s exampleSet
	if err := yaml.Unmarshal(examplesYAML, &s); err != nil {
		panic("analysis: parse embedded examples: " + err.Error())
	}
	return s
}

// CommercialExamples returns ready-to-send commercial request samples.
func CommercialExamples() []model.CommercialRequest {
	return examples.Commercial
}

// SoilExamples returns ready-to-send soil request samples.
func SoilExamples() []model.SoilRequest {
	return examples.Soil
}
