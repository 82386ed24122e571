package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pfrederiksen/university-towns/internal/classify"
	"github.com/pfrederiksen/university-towns/internal/doctree"
	"github.com/pfrederiksen/university-towns/internal/town"
)

// AnchorID is the anchor of the heading that bounds the U.S. town sections.
const AnchorID = "College_towns_in_the_United_States"

// Structural errors: the document no longer matches the assumed schema and
// no partial output is trustworthy.
var (
	ErrAnchorNotFound   = errors.New("anchor heading not found")
	ErrNoStateSections  = errors.New("no state sections found under anchor heading")
	ErrStateListMissing = errors.New("state section has no town list")
)

// Pipeline classifies every candidate town in the source document.
type Pipeline struct {
	policy town.Policy
	rules  []classify.Rule
	log    *logrus.Logger
}

// New creates a Pipeline. A nil logger falls back to the logrus standard
// logger.
func New(policy town.Policy, rules []classify.Rule, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{policy: policy, rules: rules, log: log}
}

// Result is one full run over the document: the ordered output stream plus
// run counters. Stream interleaves state labels with their town lines in
// document order; Records holds the accepted towns only.
type Result struct {
	Stream     []town.StreamLine `json:"stream"`
	Records    []town.Record     `json:"records"`
	States     int               `json:"states"`
	Candidates int               `json:"candidates"`
	Accepted   int               `json:"accepted"`
	Warnings   int               `json:"warnings"`
}

// Render writes the text form of the stream: one line per element.
func (r *Result) Render(w io.Writer) error {
	for _, line := range r.Stream {
		if _, err := fmt.Fprintln(w, line.Text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// Run classifies every candidate under the anchor section and returns the
// assembled stream. Two runs over the same tree produce identical results.
func (p *Pipeline) Run(ctx context.Context, doc *doctree.Document) (*Result, error) {
	anchor := doc.HeadingByID(AnchorID)
	if anchor == nil {
		return nil, fmt.Errorf("%w: %s", ErrAnchorNotFound, AnchorID)
	}
	marker := anchor.Headline

	res := &Result{}
	for h := anchor.NextHeading(3); h != nil; h = h.NextHeading(3) {
		enclosing := h.PreviousHeading(2)
		if enclosing == nil || enclosing.Headline != marker {
			break
		}

		state := strings.TrimSpace(strings.SplitN(h.Headline, "[", 2)[0])
		p.log.WithField("state", state).Info("checking college towns")

		res.States++
		res.Stream = append(res.Stream, town.StreamLine{
			Kind:  town.LineState,
			State: state,
			Text:  h.Text,
		})

		if err := p.extractState(ctx, h, state, res); err != nil {
			return nil, err
		}
	}

	if res.States == 0 {
		return nil, ErrNoStateSections
	}
	return res, nil
}

// extractState classifies every list entry of one state section.
func (p *Pipeline) extractState(ctx context.Context, heading *doctree.Node, state string, res *Result) error {
	list := heading.NextList()
	if list == nil {
		return fmt.Errorf("state %q: %w", state, ErrStateListMissing)
	}

	for _, item := range list.ListItems() {
		if err := ctx.Err(); err != nil {
			return err
		}
		// An item subdivided into neighborhoods is never classified itself;
		// its child entries are visited as standalone items.
		if item.HasNestedList() {
			continue
		}

		cand := p.candidate(item, state)
		res.Candidates++

		if p.accept(ctx, cand, res) {
			res.Accepted++
			res.Records = append(res.Records, town.Record{State: state, Line: cand.Raw})
			res.Stream = append(res.Stream, town.StreamLine{
				Kind:  town.LineTown,
				State: state,
				Text:  cand.Raw,
			})
		}
	}
	return nil
}

// candidate builds a Candidate from a list item, rewriting the display name
// of neighborhoods nested under a known big city.
func (p *Pipeline) candidate(item *doctree.Node, state string) *town.Candidate {
	raw := strings.TrimSpace(item.Text)

	var name, url string
	var uniTexts []string
	if len(item.Links) > 0 {
		name = item.Links[0].Text
		url = item.Links[0].Href
		for _, l := range item.Links[1:] {
			uniTexts = append(uniTexts, l.Text)
		}
	}

	if city, ok := enclosingCity(item); ok && name != "" && p.policy.IsBigCity(city) {
		rewritten := name + ", " + city
		if strings.HasPrefix(raw, name) {
			raw = rewritten + raw[len(name):]
		} else {
			raw = strings.Replace(raw, name, rewritten, 1)
		}
		name = rewritten
	}

	return &town.Candidate{
		State:        state,
		Raw:          raw,
		Name:         name,
		URL:          url,
		Universities: town.Universities(uniTexts),
		Citations:    town.ParseCitations(raw),
	}
}

// enclosingCity resolves the city an item is nested under. An item is a
// neighborhood entry iff its enclosing list is itself inside a list item;
// that outer item's first link names the city.
func enclosingCity(item *doctree.Node) (string, bool) {
	list := item.Parent
	if list == nil || list.Kind != doctree.KindList {
		return "", false
	}
	outer := list.Parent
	if outer == nil || outer.Kind != doctree.KindItem {
		return "", false
	}
	if link, ok := outer.FirstLink(); ok {
		return strings.TrimSpace(link.Text), true
	}
	return "", false
}

// accept runs the rule chain, stopping at the first non-defer verdict. A
// rule error fails the candidate closed and is surfaced as a warning; the
// run continues with the next candidate.
func (p *Pipeline) accept(ctx context.Context, cand *town.Candidate, res *Result) bool {
	for _, rule := range p.rules {
		verdict, err := rule.Evaluate(ctx, cand)
		if err != nil {
			res.Warnings++
			p.log.WithFields(logrus.Fields{
				"state": cand.State,
				"town":  cand.Name,
				"rule":  rule.Name(),
			}).WithError(err).Warn("evidence lookup failed, dropping candidate")
			return false
		}
		switch verdict {
		case classify.VerdictAccept:
			p.log.WithFields(logrus.Fields{
				"state": cand.State,
				"town":  cand.Name,
				"rule":  rule.Name(),
			}).Debug("candidate accepted")
			return true
		case classify.VerdictReject:
			p.log.WithFields(logrus.Fields{
				"state": cand.State,
				"town":  cand.Name,
				"rule":  rule.Name(),
			}).Debug("candidate rejected")
			return false
		}
	}
	return false
}
