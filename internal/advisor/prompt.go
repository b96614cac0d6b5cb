package advisor

import (
	"fmt"
	"strings"
)

// BuildCommercialPrompt renders the geomarketing analysis prompt sent to
// live advisors.
func BuildCommercialPrompt(in CommercialContext) string {
	var b strings.Builder
	b.WriteString("En tant qu'expert en géomarketing, analyse l'emplacement suivant pour y implanter un commerce:\n\n")
	fmt.Fprintf(&b, "Localisation: %s\n", in.Location)
	fmt.Fprintf(&b, "Type de commerce: %s\n", in.BusinessType)
	fmt.Fprintf(&b, "Rayon d'analyse: %.0f mètres\n\n", in.Radius)

	b.WriteString("Facteurs d'importance:\n")
	fmt.Fprintf(&b, "- Population: %.2f\n", in.Factors["population"])
	fmt.Fprintf(&b, "- Concurrence: %.2f\n", in.Factors["competition"])
	fmt.Fprintf(&b, "- Accessibilité: %.2f\n", in.Factors["accessibility"])
	fmt.Fprintf(&b, "- Visibilité: %.2f\n\n", in.Factors["visibility"])

	if len(in.Scores) > 0 {
		b.WriteString("Scores calculés:\n")
		fmt.Fprintf(&b, "- Points d'intérêt: %.1f/10\n", in.Scores["poi_score"])
		fmt.Fprintf(&b, "- Accessibilité routière: %.1f/10\n", in.Scores["road_score"])
		fmt.Fprintf(&b, "- Concurrence: %.1f/10 (%d concurrents)\n\n", in.Scores["competition_score"], in.Competitors)
	}

	b.WriteString("Fournir une analyse détaillée avec:\n")
	b.WriteString("1. Scores d'attractivité (global, points d'intérêt, accessibilité, concurrence)\n")
	b.WriteString("2. Identification des emplacements optimaux avec leurs avantages et inconvénients\n")
	b.WriteString("3. Recommandations stratégiques\n")
	return b.String()
}

// BuildSoilPrompt renders the agronomy analysis prompt sent to live advisors.
func BuildSoilPrompt(in SoilContext) string {
	var b strings.Builder
	b.WriteString("En tant qu'expert en agronomie et pédologie, analyse la qualité des sols suivants pour la culture:\n\n")
	fmt.Fprintf(&b, "Localisation: %s\n", in.Location)
	fmt.Fprintf(&b, "Type de culture: %s\n", in.CropType)
	fmt.Fprintf(&b, "Profondeur d'analyse: %.0f cm\n\n", in.Depth)

	b.WriteString("Facteurs d'importance:\n")
	fmt.Fprintf(&b, "- pH: %.2f\n", in.Factors["ph"])
	fmt.Fprintf(&b, "- Drainage: %.2f\n", in.Factors["drainage"])
	fmt.Fprintf(&b, "- Texture: %.2f\n", in.Factors["texture"])
	fmt.Fprintf(&b, "- Matière organique: %.2f\n\n", in.Factors["organic_matter"])

	if in.Properties.Texture != "" {
		b.WriteString("Propriétés du sol observées:\n")
		fmt.Fprintf(&b, "- Texture: %s\n", in.Properties.Texture)
		fmt.Fprintf(&b, "- pH: %.1f\n", in.Properties.PH)
		fmt.Fprintf(&b, "- Matière organique: %.1f%%\n", in.Properties.OrganicMatter)
		fmt.Fprintf(&b, "- Drainage: %s\n\n", in.Properties.Drainage)
	}

	b.WriteString("Fournir une analyse détaillée avec:\n")
	b.WriteString("1. Scores de compatibilité (global, pH, drainage, texture, matière organique)\n")
	b.WriteString("2. Identification des zones optimales, intermédiaires et peu adaptées\n")
	b.WriteString("3. Recommandations agronomiques pour chaque zone\n")
	return b.String()
}
