package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// querySelectorAll returns all element nodes matching a selector.
// Supported subset:
//   - tag: "li", "script"
//   - .class chains: ".a-price", "span.a-size-base-plus.a-color-base"
//   - #id: "#g-items"
//   - [attr], [attr=val], [attr^=val]: "[data-itemid]", "script[type=a-state]"
//   - descendant combination separated by space: ".a-price .a-offscreen"
func querySelectorAll(root *html.Node, selector string) []*html.Node {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil
	}

	matches := matchSimple(root, parts[0])
	for i := 1; i < len(parts); i++ {
		var next []*html.Node
		seen := make(map[*html.Node]bool)
		for _, parent := range matches {
			for _, n := range matchSimple(parent, parts[i]) {
				if seen[n] {
					continue
				}
				seen[n] = true
				next = append(next, n)
			}
		}
		matches = next
	}
	return matches
}

// matchSimple finds all strict descendants of root matching one compound
// selector; root itself never matches.
func matchSimple(root *html.Node, sel string) []*html.Node {
	m := parseSimpleSelector(sel)
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if matchesSelector(n, m) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return results
}

type simpleSelector struct {
	tag        string
	id         string
	classes    []string
	attrKey    string
	attrVal    string
	attrPrefix bool
}

// parseSimpleSelector parses "tag.class1.class2", "#id", "tag[attr^=val]", etc.
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	// Attribute selector: tag[attr], tag[attr=val], tag[attr^=val]
	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		switch {
		case strings.Contains(attrPart, "^="):
			kv := strings.SplitN(attrPart, "^=", 2)
			s.attrKey = kv[0]
			s.attrVal = strings.Trim(kv[1], `"'`)
			s.attrPrefix = true
		case strings.Contains(attrPart, "="):
			kv := strings.SplitN(attrPart, "=", 2)
			s.attrKey = kv[0]
			s.attrVal = strings.Trim(kv[1], `"'`)
		default:
			s.attrKey = attrPart
		}
	}

	// #id
	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	// tag.class1.class2
	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		for _, c := range strings.Split(sel[idx+1:], ".") {
			if c != "" {
				s.classes = append(s.classes, c)
			}
		}
		sel = sel[:idx]
	}

	s.tag = sel
	return s
}

func matchesSelector(n *html.Node, s simpleSelector) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.id != "" && attrVal(n, "id") != s.id {
		return false
	}
	if len(s.classes) > 0 {
		have := strings.Fields(attrVal(n, "class"))
		for _, want := range s.classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	if s.attrKey != "" {
		val, ok := lookupAttr(n, s.attrKey)
		if !ok {
			return false
		}
		switch {
		case s.attrPrefix:
			if !strings.HasPrefix(val, s.attrVal) {
				return false
			}
		case s.attrVal != "":
			if val != s.attrVal {
				return false
			}
		}
	}
	return true
}

func lookupAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
