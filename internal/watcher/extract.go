package watcher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ayumu-labs/wishwatch/internal/domain"
	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// catalogIDPattern matches the known detail-page path shapes and captures
// the 10-character catalog identifier.
var catalogIDPattern = regexp.MustCompile(`(?i)/(?:dp|gp/product|gp/aw/d)/([A-Z0-9]{10})`)

// titleSelectors are scanned, in order, when no hyperlink yields a usable
// title for an item node.
var titleSelectors = []string{
	"span.a-size-base-plus.a-color-base",
	"span.a-size-medium",
	"span.a-size-large",
	"span[id^=itemName_]",
	"h3 a",
	"h4 a",
}

// Extractor parses one page of listing markup into items.
type Extractor struct {
	parser ports.Parser
	log    zerolog.Logger
}

// NewExtractor creates an Extractor using the given markup parser.
func NewExtractor(parser ports.Parser, log zerolog.Logger) *Extractor {
	return &Extractor{parser: parser, log: log}
}

// Extract parses pageMarkup and returns its items in document order,
// deduplicated by ID (first occurrence wins). A recognizable but empty
// items container yields zero items without error; a page without any
// recognizable container is a structural failure for the whole run.
func (e *Extractor) Extract(pageMarkup, baseURL string) ([]domain.Item, error) {
	doc, err := e.parser.Parse(pageMarkup)
	if err != nil {
		return nil, fmt.Errorf("%w: parse page: %v", domain.ErrExtraction, err)
	}
	return e.Items(doc, baseURL)
}

// Items extracts items from an already-parsed document.
func (e *Extractor) Items(doc ports.Node, baseURL string) ([]domain.Item, error) {
	container := locateItemsContainer(doc)
	if container == nil {
		return nil, fmt.Errorf("%w: items container not found", domain.ErrExtraction)
	}

	nodes := container.Select("[data-itemid]")

	// Degraded markup fallback: list items that lost the per-item data
	// identifier but still carry a hyperlink. Irregular nesting can make
	// this overlap with the primary selection; identity dedup below
	// resolves the overlap.
	for _, li := range container.Select("li") {
		if li.Attr("data-itemid") != "" {
			continue
		}
		if len(li.Select("a[href]")) == 0 {
			continue
		}
		nodes = append(nodes, li)
	}

	var items []domain.Item
	seen := make(map[string]bool)
	for _, n := range nodes {
		item, ok := itemFromNode(n, baseURL)
		if !ok {
			continue
		}
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	e.log.Debug().Int("candidates", len(nodes)).Int("items", len(items)).Msg("extracted page items")
	return items, nil
}

func locateItemsContainer(doc ports.Node) ports.Node {
	if c := doc.SelectOne("#g-items"); c != nil {
		return c
	}
	return doc.SelectOne("[data-testid=g-items]")
}

// itemFromNode converts one candidate node into an item. A node without
// a usable title is not an item; that is a per-node condition, not an error.
func itemFromNode(n ports.Node, baseURL string) (domain.Item, bool) {
	title, link := extractTitleAndLink(n)
	if title == "" {
		return domain.Item{}, false
	}

	absURL := baseURL
	if link != "" {
		absURL = resolveURL(baseURL, link)
	}

	id := ""
	if link != "" {
		id = catalogID(link)
	}
	if id == "" {
		id = contentHash(title, absURL)
	}

	return domain.Item{
		ID:    id,
		Title: title,
		Price: extractPrice(n),
		URL:   absURL,
	}, true
}

// extractTitleAndLink scans the node's hyperlinks in document order,
// preferring the first one whose target looks like a detail page and
// whose label is not boilerplate. The cascade then falls through to the
// anchor's title attribute, the first anchor at all, and finally the
// fixed list of text-bearing selectors.
func extractTitleAndLink(n ports.Node) (string, string) {
	anchors := n.Select("a[href]")

	var candidate ports.Node
	var title string

	for _, a := range anchors {
		if !catalogIDPattern.MatchString(a.Attr("href")) {
			continue
		}
		if text := sanitizeTitle(a.Text()); !ignoredTitleTexts[text] {
			candidate, title = a, text
			break
		}
		if attr := sanitizeTitle(a.Attr("title")); !ignoredTitleTexts[attr] {
			candidate, title = a, attr
			break
		}
		candidate = a
	}

	if candidate == nil && len(anchors) > 0 {
		candidate = anchors[0]
	}

	if candidate != nil && title == "" {
		title = sanitizeTitle(candidate.Text())
		if title == "" {
			title = sanitizeTitle(candidate.Attr("title"))
		}
	}

	if title == "" {
		title = titleFromSelectors(n)
	}

	link := ""
	if candidate != nil {
		link = candidate.Attr("href")
	}
	return title, link
}

func titleFromSelectors(n ports.Node) string {
	for _, sel := range titleSelectors {
		el := n.SelectOne(sel)
		if el == nil {
			continue
		}
		if text := sanitizeTitle(el.Text()); !ignoredTitleTexts[text] {
			return text
		}
	}
	return ""
}

// catalogID extracts the catalog identifier from a detail-page href,
// normalized to uppercase. A secondary pass scans raw path segments for
// a "dp" marker, covering links that dodge the known shapes.
func catalogID(href string) string {
	if m := catalogIDPattern.FindStringSubmatch(href); m != nil {
		return strings.ToUpper(m[1])
	}
	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if strings.EqualFold(seg, "dp") && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1]
		}
	}
	return ""
}

// contentHash derives a stable fallback identity from title and URL.
func contentHash(title, absURL string) string {
	sum := sha1.Sum([]byte(title + "\n" + absURL))
	return hex.EncodeToString(sum[:])
}

// resolveURL resolves ref against base, falling back to base itself when
// either side is unparseable.
func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return base
	}
	r, err := url.Parse(ref)
	if err != nil {
		return base
	}
	return b.ResolveReference(r).String()
}
