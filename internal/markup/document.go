// Package markup implements the ports.Node query abstraction on top of
// golang.org/x/net/html.
package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// Parser parses HTML pages into queryable documents.
// The zero value is ready to use.
type Parser struct{}

// Parse implements ports.Parser.
func (Parser) Parse(page string) (ports.Node, error) {
	return Parse(page)
}

// Parse parses one page of HTML and returns its document root.
// x/net/html is tolerant, so malformed markup still yields a tree.
func Parse(page string) (ports.Node, error) {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	return &node{n: root}, nil
}

type node struct {
	n *html.Node
}

// Select returns all descendant elements matching the selector in
// document order.
func (e *node) Select(selector string) []ports.Node {
	matches := querySelectorAll(e.n, selector)
	out := make([]ports.Node, 0, len(matches))
	for _, m := range matches {
		out = append(out, &node{n: m})
	}
	return out
}

// SelectOne returns the first matching descendant, or nil.
func (e *node) SelectOne(selector string) ports.Node {
	matches := querySelectorAll(e.n, selector)
	if len(matches) == 0 {
		return nil
	}
	return &node{n: matches[0]}
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *node) Attr(name string) string {
	return attrVal(e.n, name)
}

// Text returns the visible text with whitespace normalized: fragments
// joined by single spaces, runs collapsed, ends trimmed.
func (e *node) Text() string {
	return strings.Join(strings.Fields(collectText(e.n, " ")), " ")
}

// RawText returns the concatenated text content unmodified.
func (e *node) RawText() string {
	return collectText(e.n, "")
}

func collectText(root *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(parts, sep)
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
