// Package classify implements the evidence policy that vets candidate
// college towns.
//
// Acceptance is an ordered chain of rules, each returning accept, reject, or
// defer: a trusted citation marker accepts immediately with no network
// lookup; otherwise the corroboration checker fetches the town's own article
// and accepts on category membership (fast path) or on a university being
// mentioned at least twice in the lead or Economy section (slow path). The
// section classifier decides which nodes of the fetched article count as
// in-scope for the mention heuristic.
package classify
