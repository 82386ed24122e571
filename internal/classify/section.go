package classify

import (
	"strings"

	"github.com/pfrederiksen/university-towns/internal/doctree"
)

// InScope reports whether a node counts as authoritative context for the
// mention heuristic. Only paragraphs and tables qualify, and only when they
// sit in the article's lead (no preceding h2) or under an "Economy" heading.
// Mentions anywhere else in an article are weak evidence and never count.
func InScope(n *doctree.Node) bool {
	if n.Kind != doctree.KindParagraph && n.Kind != doctree.KindTable {
		return false
	}
	heading := n.PreviousHeading(2)
	if heading == nil {
		return true
	}
	return strings.Contains(strings.ToLower(heading.Headline), "economy")
}
