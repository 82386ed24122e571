// Package fetcher provides HTTP retrieval of article documents for the
// classification pipeline.
//
// The fetcher issues roughly one request per candidate town, so it
// rate-limits outbound requests, retries transient failures with exponential
// backoff, and memoizes parsed documents for the length of a run. Responses
// are handed to doctree for parsing; callers never see raw HTML.
package fetcher
