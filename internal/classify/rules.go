package classify

import (
	"context"

	"github.com/pfrederiksen/university-towns/internal/town"
)

// Verdict is the outcome of one evidence rule.
type Verdict int

const (
	// VerdictDefer passes the decision to the next rule in the chain.
	VerdictDefer Verdict = iota
	VerdictAccept
	VerdictReject
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccept:
		return "accept"
	case VerdictReject:
		return "reject"
	}
	return "defer"
}

// Rule is one step of the acceptance chain. The extractor evaluates rules in
// order and stops at the first non-defer verdict; a chain that only defers
// drops the candidate.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, cand *town.Candidate) (Verdict, error)
}

// CitationRule accepts candidates carrying a trusted citation marker. It
// defers otherwise, including when citations are present but untrusted, so
// those candidates still get corroborated.
type CitationRule struct {
	Policy town.Policy
}

func (CitationRule) Name() string { return "trusted-citation" }

func (r CitationRule) Evaluate(_ context.Context, cand *town.Candidate) (Verdict, error) {
	if r.Policy.TrustsAny(cand.Citations) {
		return VerdictAccept, nil
	}
	return VerdictDefer, nil
}

// CorroborationRule delegates to the Checker and never defers: corroboration
// is the last word. A fetch error rejects and is surfaced for logging.
type CorroborationRule struct {
	Checker *Checker
}

func (CorroborationRule) Name() string { return "corroboration" }

func (r CorroborationRule) Evaluate(ctx context.Context, cand *town.Candidate) (Verdict, error) {
	ok, err := r.Checker.Corroborates(ctx, cand)
	if err != nil {
		return VerdictReject, err
	}
	if ok {
		return VerdictAccept, nil
	}
	return VerdictReject, nil
}

// DefaultRules builds the standard two-rule chain.
func DefaultRules(policy town.Policy, checker *Checker) []Rule {
	return []Rule{
		CitationRule{Policy: policy},
		CorroborationRule{Checker: checker},
	}
}
