// Package cli implements the command-line interface for university-towns.
//
// The cli package provides the Cobra-based CLI that fetches the source
// article, runs the classification pipeline, and writes the vetted
// state/town stream as text or JSON. The trusted-citation allow-list and the
// big-city set are overridable from flags; the run summary goes to stderr so
// the stream stays machine-consumable.
package cli
