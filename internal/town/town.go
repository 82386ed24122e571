package town

import (
	"regexp"
	"strings"
)

// citationPattern matches bracketed 1-2 digit citation markers, e.g. "[7]".
var citationPattern = regexp.MustCompile(`\[([0-9]{1,2})\]`)

// Candidate is one list entry awaiting classification.
type Candidate struct {
	State        string   // state section the entry appears under
	Raw          string   // display line, possibly with the name rewritten
	Name         string   // resolved display name, "Neighborhood, City" when nested
	URL          string   // relative URL of the town's own article
	Universities []string // associated university names, lower-cased
	Citations    []string // citation markers parsed from Raw
}

// Record is an accepted candidate: the output unit consumed downstream.
type Record struct {
	State string `json:"state"`
	Line  string `json:"line"`
}

// LineKind distinguishes the two kinds of output stream lines.
type LineKind string

const (
	LineState LineKind = "state"
	LineTown  LineKind = "town"
)

// StreamLine is one element of the ordered output stream. State labels keep
// the heading's trailing section-edit marker; downstream consumers key on it.
type StreamLine struct {
	Kind  LineKind `json:"kind"`
	State string   `json:"state"`
	Text  string   `json:"text"`
}

// ParseCitations extracts citation markers from a display line.
func ParseCitations(line string) []string {
	matches := citationPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	citations := make([]string, 0, len(matches))
	for _, m := range matches {
		citations = append(citations, m[1])
	}
	return citations
}

// Universities filters and normalizes the link texts following a candidate's
// own article link. Placeholder citation links ("citation needed") and
// bracket-notation artifacts are discarded; survivors are lower-cased.
func Universities(linkTexts []string) []string {
	var unis []string
	for _, text := range linkTexts {
		if text == "citation needed" || strings.Contains(text, "[") {
			continue
		}
		unis = append(unis, strings.ToLower(text))
	}
	return unis
}
