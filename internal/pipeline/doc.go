// Package pipeline walks the college-towns article and assembles the vetted
// output stream.
//
// The driver anchors on the "College towns in the United States" section and
// iterates its per-state h3 headings in document order; the extractor turns
// each state's list into candidates, resolves neighborhood names against the
// big-city set, and runs every candidate through the evidence-rule chain.
// State association is positional: a town belongs to the nearest preceding
// state label, exactly as in the source article.
package pipeline
