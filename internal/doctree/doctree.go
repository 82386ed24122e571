package doctree

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Kind identifies the structural role of a node.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindTable
	KindList
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindList:
		return "list"
	case KindItem:
		return "item"
	}
	return "unknown"
}

// Link is a hyperlink found inside a node, in document order.
type Link struct {
	Text string
	Href string
}

// Node is one structural element of the article. Nodes are built once at
// parse time and never mutated afterwards.
type Node struct {
	Kind     Kind
	Level    int    // heading level (2 for h2, 3 for h3); 0 for non-headings
	Text     string // flattened text content, including citation brackets
	Headline string // for headings: text of the first span child, else Text
	Links    []Link
	Parent   *Node // nearest enclosing structural node, nil at top level
	Children []*Node

	anchorIDs []string
	index     int
	doc       *Document
}

// Document is the parsed article.
type Document struct {
	nodes         []*Node
	categoryLinks []Link
}

// Parse reads HTML and builds the typed tree.
func Parse(r io.Reader) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	d := &Document{}
	for _, root := range gq.Selection.Nodes {
		d.walk(root, nil)
	}

	gq.Find("#catlinks a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		d.categoryLinks = append(d.categoryLinks, Link{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})

	return d, nil
}

// walk builds typed nodes from the raw HTML tree. parent is the nearest
// enclosing typed node, not the raw HTML parent.
func (d *Document) walk(n *html.Node, parent *Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		}
		// The category-links region is exposed through CategoryLinks, not
		// as structural nodes.
		if attr(n, "id") == "catlinks" {
			return
		}

		if kind, level, ok := kindOf(n.Data); ok {
			node := &Node{
				Kind:   kind,
				Level:  level,
				Text:   textContent(n),
				Parent: parent,
				index:  len(d.nodes),
				doc:    d,
			}
			if id := attr(n, "id"); id != "" {
				node.anchorIDs = append(node.anchorIDs, id)
			}
			collectLinks(n, &node.Links)
			if kind == KindHeading {
				node.Headline = node.Text
				if span := firstElement(n, "span"); span != nil {
					node.Headline = textContent(span)
				}
				collectSpanIDs(n, &node.anchorIDs)
			}
			d.nodes = append(d.nodes, node)
			if parent != nil {
				parent.Children = append(parent.Children, node)
			}
			parent = node
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c, parent)
	}
}

func kindOf(tag string) (Kind, int, bool) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return KindHeading, int(tag[1] - '0'), true
	case "p":
		return KindParagraph, 0, true
	case "table":
		return KindTable, 0, true
	case "ul", "ol":
		return KindList, 0, true
	case "li":
		return KindItem, 0, true
	}
	return 0, 0, false
}

// Nodes returns every structural node in document order.
func (d *Document) Nodes() []*Node {
	return d.nodes
}

// CategoryLinks returns the links of the article's category box, if any.
func (d *Document) CategoryLinks() []Link {
	return d.categoryLinks
}

// HeadingByID finds the heading carrying the given anchor id, either on the
// heading element itself or on a span inside it.
func (d *Document) HeadingByID(id string) *Node {
	for _, n := range d.nodes {
		if n.Kind != KindHeading {
			continue
		}
		for _, a := range n.anchorIDs {
			if a == id {
				return n
			}
		}
	}
	return nil
}

// NextHeading returns the next heading of the given level after n in
// document order, or nil.
func (n *Node) NextHeading(level int) *Node {
	for i := n.index + 1; i < len(n.doc.nodes); i++ {
		c := n.doc.nodes[i]
		if c.Kind == KindHeading && c.Level == level {
			return c
		}
	}
	return nil
}

// PreviousHeading returns the nearest heading of the given level before n in
// document order, or nil if n sits above any such heading.
func (n *Node) PreviousHeading(level int) *Node {
	for i := n.index - 1; i >= 0; i-- {
		c := n.doc.nodes[i]
		if c.Kind == KindHeading && c.Level == level {
			return c
		}
	}
	return nil
}

// NextList returns the first list after n in document order, or nil.
func (n *Node) NextList() *Node {
	for i := n.index + 1; i < len(n.doc.nodes); i++ {
		if n.doc.nodes[i].Kind == KindList {
			return n.doc.nodes[i]
		}
	}
	return nil
}

// ListItems returns every item descendant of n in document order, including
// items of nested lists.
func (n *Node) ListItems() []*Node {
	var items []*Node
	var visit func(*Node)
	visit = func(c *Node) {
		for _, ch := range c.Children {
			if ch.Kind == KindItem {
				items = append(items, ch)
			}
			visit(ch)
		}
	}
	visit(n)
	return items
}

// HasNestedList reports whether n contains a list anywhere beneath it.
func (n *Node) HasNestedList() bool {
	for _, ch := range n.Children {
		if ch.Kind == KindList || ch.HasNestedList() {
			return true
		}
	}
	return false
}

// FirstLink returns the first hyperlink inside n.
func (n *Node) FirstLink() (Link, bool) {
	if len(n.Links) == 0 {
		return Link{}, false
	}
	return n.Links[0], true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			return
		}
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style":
				return
			}
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			visit(ch)
		}
	}
	visit(n)
	return b.String()
}

func collectLinks(n *html.Node, out *[]Link) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "a" {
			if href := attr(c, "href"); href != "" {
				*out = append(*out, Link{Text: textContent(c), Href: href})
			}
		}
		collectLinks(c, out)
	}
}

func firstElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectSpanIDs(n *html.Node, out *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "span" {
			if id := attr(c, "id"); id != "" {
				*out = append(*out, id)
			}
		}
		collectSpanIDs(c, out)
	}
}
