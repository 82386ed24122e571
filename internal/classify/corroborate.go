package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/university-towns/internal/doctree"
	"github.com/pfrederiksen/university-towns/internal/town"
)

const (
	// CategoryHref marks conclusive category membership on a town's article.
	CategoryHref = "/wiki/Category:University_towns_in_the_United_States"

	// DefaultBaseURL resolves the relative article links of the source list.
	DefaultBaseURL = "https://en.wikipedia.org"

	// mentionThreshold is the number of in-scope mentions a single
	// university needs for the slow path to accept.
	mentionThreshold = 2
)

// Source provides parsed documents by URL. Satisfied by fetcher.Fetcher;
// tests substitute fakes.
type Source interface {
	Document(ctx context.Context, url string) (*doctree.Document, error)
}

// Checker decides whether independent evidence supports classifying a
// candidate as a university town.
type Checker struct {
	source  Source
	baseURL string
}

// NewChecker creates a Checker resolving article links against baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewChecker(source Source, baseURL string) *Checker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Checker{source: source, baseURL: baseURL}
}

// Corroborates fetches the candidate's own article and checks it for
// evidence. The fast path (category membership) is authoritative and cheap;
// the mention-count heuristic runs only when it misses. A fetch failure is
// returned to the caller, which fails the candidate closed.
func (c *Checker) Corroborates(ctx context.Context, cand *town.Candidate) (bool, error) {
	doc, err := c.source.Document(ctx, c.baseURL+cand.URL)
	if err != nil {
		return false, fmt.Errorf("fetching article for %q: %w", cand.Name, err)
	}

	for _, link := range doc.CategoryLinks() {
		if link.Href == CategoryHref {
			return true, nil
		}
	}

	var inScope []*doctree.Node
	for _, n := range doc.Nodes() {
		if InScope(n) {
			inScope = append(inScope, n)
		}
	}

	for _, uni := range cand.Universities {
		mentions := 0
		for _, n := range inScope {
			if strings.Contains(strings.ToLower(n.Text), uni) {
				mentions++
				if mentions >= mentionThreshold {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
