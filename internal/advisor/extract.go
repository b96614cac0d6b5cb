package advisor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/geomarket/internal/model"
)

// FallbackRecommendation is returned when a narrative contains no
// recognizable recommendation line.
const FallbackRecommendation = "Aucune recommandation spécifique n'a été identifiée dans l'analyse."

var (
	percentPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
	scorePattern   = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*/\s*10`)
)

// fold lowercases s and strips diacritics, so "Caractéristiques" matches
// "caracteristiques".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// ExtractRecommendations pulls recommendation strings out of an analysis
// narrative. Every line mentioning "recommand" contributes itself plus the
// following non-empty line, which in the narrative layout carries the body
// of a recommendation announced by a header line.
func ExtractRecommendations(text string) []string {
	lines := strings.Split(text, "\n")
	var recs []string
	for i, line := range lines {
		if !strings.Contains(fold(line), "recommand") {
			continue
		}
		rec := strings.TrimSpace(line)
		if i+1 < len(lines) {
			if next := strings.TrimSpace(lines[i+1]); next != "" {
				rec += " " + next
			}
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return []string{FallbackRecommendation}
	}
	return recs
}

// ExtractZones pulls zone records out of a soil analysis narrative. A line
// whose text before the first colon mentions "zone" opens a record; lines
// prefixed "Caractéristiques:" or "Recommandations:" attach their
// comma-separated entries to the open record until the next header.
func ExtractZones(text string) []model.Zone {
	var zones []model.Zone
	var cur *model.Zone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		head, rest, ok := strings.Cut(line, ":")
		if !ok {
			if cur != nil {
				fillZoneNumbers(cur, line)
			}
			continue
		}

		switch {
		case strings.Contains(fold(head), "zone"):
			zones = append(zones, model.Zone{Name: trimListMarker(head)})
			cur = &zones[len(zones)-1]
			fillZoneNumbers(cur, line)
		case cur == nil:
			// prologue before the first header
		case strings.Contains(fold(head), "caracteristique"):
			cur.Characteristics = append(cur.Characteristics, splitEntries(rest)...)
		case strings.Contains(fold(head), "recommandation"):
			cur.Recommendations = append(cur.Recommendations, splitEntries(rest)...)
		default:
			fillZoneNumbers(cur, line)
		}
	}

	if len(zones) == 0 {
		return []model.Zone{{
			Name:            "Zone unique",
			Proportion:      100,
			Recommendations: []string{FallbackRecommendation},
		}}
	}
	return zones
}

// fillZoneNumbers sets the zone's proportion and score from the first
// percentage and "/10" figure seen in its lines.
func fillZoneNumbers(z *model.Zone, line string) {
	if z.Proportion == 0 {
		if m := percentPattern.FindStringSubmatch(line); m != nil {
			z.Proportion = parseDecimal(m[1])
		}
	}
	if z.Score == 0 {
		if m := scorePattern.FindStringSubmatch(line); m != nil {
			z.Score = parseDecimal(m[1])
		}
	}
}

func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// trimListMarker drops leading enumeration markers such as "1. " or "- ".
func trimListMarker(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "0123456789.-*) \t")
}

func splitEntries(s string) []string {
	var entries []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), ".")); part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}
