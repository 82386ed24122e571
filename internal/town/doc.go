// Package town provides the domain types for the college-town classification
// pipeline: candidates awaiting vetting, accepted records, the ordered output
// stream, and the acceptance policy (trusted citation markers and the
// big-city set used for neighborhood disambiguation).
package town
