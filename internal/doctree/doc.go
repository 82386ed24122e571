// Package doctree provides a typed, read-only view of a parsed Wikipedia-style
// article.
//
// The tree exposes only the navigation the classification pipeline needs:
// headings by anchor id, previous/next heading of a given level, the next list
// after a heading, list items, per-node text and links, and the article's
// category links. All tag-soup traversal is confined to this package so the
// rest of the pipeline works against stable node kinds instead of raw HTML.
package doctree
