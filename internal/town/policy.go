package town

// DefaultTrustedCitations is the vetted allow-list of citation markers in
// the source article. An entry carrying any of these is accepted without a
// corroboration lookup.
var DefaultTrustedCitations = []string{
	"7", "9", "13", "15", "16", "17", "22", "24", "28", "30", "34", "37",
	"38", "40", "41", "43", "50", "54",
}

// DefaultBigCities are the metros whose listed entries are neighborhoods
// rather than towns; a nested entry under one of these gets its name
// rewritten to "Neighborhood, City".
var DefaultBigCities = []string{
	"Los Angeles", "Sacramento", "Atlanta", "Chicago", "Detroit",
	"Cleveland", "Columbus", "Johnstown", "Lower Merion Township",
	"Philadelphia", "Pittsburgh", "State College", "Providence",
}

// Policy holds the run's fixed acceptance configuration. It is built once
// before the pipeline starts and never mutated during a run.
type Policy struct {
	trusted   map[string]bool
	bigCities map[string]bool
}

// NewPolicy builds a Policy from explicit allow-lists.
func NewPolicy(trustedCitations, bigCities []string) Policy {
	p := Policy{
		trusted:   make(map[string]bool, len(trustedCitations)),
		bigCities: make(map[string]bool, len(bigCities)),
	}
	for _, c := range trustedCitations {
		p.trusted[c] = true
	}
	for _, c := range bigCities {
		p.bigCities[c] = true
	}
	return p
}

// DefaultPolicy builds a Policy from the default allow-lists.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultTrustedCitations, DefaultBigCities)
}

// TrustsAny reports whether any of the given citation markers is trusted.
func (p Policy) TrustsAny(citations []string) bool {
	for _, c := range citations {
		if p.trusted[c] {
			return true
		}
	}
	return false
}

// IsBigCity reports whether name is in the big-city set.
func (p Policy) IsBigCity(name string) bool {
	return p.bigCities[name]
}
