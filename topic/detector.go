package topic

import (
	"sort"
	"strings"

	"github.com/estateflow/leadlens/core"
)

// projectKeywords maps lower-cased keyword phrases to canonical project
// identifiers. Several phrases alias the same project so partial mentions
// ("alvarez", "del parque", "lomas") still resolve. A shorter keyword that
// is contained in a longer one is NOT suppressed when both match; since all
// overlapping phrases map to the same canonical id, deduplication absorbs
// the double hit.
var projectKeywords = map[string]string{
	"torre alvarez":          "Torre Alvarez",
	"torre álvarez":          "Torre Alvarez",
	"alvarez":                "Torre Alvarez",
	"residencial del parque": "Residencial del Parque",
	"residencial parque":     "Residencial del Parque",
	"del parque":             "Residencial del Parque",
	"lomas verdes":           "Lomas Verdes",
	"lomas":                  "Lomas Verdes",
}

// Detector scans conversation text for known project mentions.
type Detector struct {
	keywords map[string]string
	// ordered longest-first so the most specific phrase is tested before
	// any shorter phrase it contains
	ordered []string
}

// NewDetector creates a detector over the built-in project keyword map.
func NewDetector() *Detector {
	return NewDetectorWithKeywords(projectKeywords)
}

// NewDetectorWithKeywords creates a detector over a custom keyword map.
// Keys must be lower-cased phrases; values are canonical identifiers.
func NewDetectorWithKeywords(keywords map[string]string) *Detector {
	ordered := make([]string, 0, len(keywords))
	for keyword := range keywords {
		ordered = append(ordered, keyword)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
	return &Detector{keywords: keywords, ordered: ordered}
}

// Detect returns the canonical identifiers of every project mentioned in
// the messages, deduplicated, in detection order. The scan concatenates all
// message contents, lower-cases the result, and tests each keyword with a
// plain substring search, longest keyword first.
//
// No mentions yields an empty slice.
func (d *Detector) Detect(messages []core.Message) []string {
	var builder strings.Builder
	for i, msg := range messages {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(msg.Content)
	}
	fullText := strings.ToLower(builder.String())

	found := make([]string, 0, 2)
	seen := make(map[string]bool, 2)
	for _, keyword := range d.ordered {
		if !strings.Contains(fullText, keyword) {
			continue
		}
		canonical := d.keywords[keyword]
		if !seen[canonical] {
			seen[canonical] = true
			found = append(found, canonical)
		}
	}
	return found
}
