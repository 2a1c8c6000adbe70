package watcher

import (
	"encoding/json"
	htmltext "html"
	"net/url"
	"strings"

	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// scrollState is the embedded pagination state blob carried by a
// script tag when the hidden continuation field is absent.
type scrollState struct {
	ShowMoreURL     string `json:"showMoreUrl"`
	PaginationToken string `json:"paginationToken"`
}

// resolveContinuation finds the next page URL on a listing page, or ""
// when the page has no continuation. Resolution order: the hidden form
// field carrying an explicit URL, then the script-carried state blob
// with either a direct URL or a raw token from which a URL is
// synthesized.
func resolveContinuation(doc ports.Node, baseURL string) string {
	if input := doc.SelectOne("[name=showMoreUrl]"); input != nil {
		if v := input.Attr("value"); v != "" {
			return resolveURL(baseURL, v)
		}
	}

	for _, script := range doc.Select("script[type=a-state]") {
		stateAttr := script.Attr("data-a-state")
		if stateAttr == "" || !strings.Contains(stateAttr, "scrollState") {
			continue
		}
		raw := strings.TrimSpace(script.RawText())
		if raw == "" {
			continue
		}
		var st scrollState
		if err := json.Unmarshal([]byte(htmltext.UnescapeString(raw)), &st); err != nil {
			continue
		}
		if st.ShowMoreURL != "" {
			return resolveURL(baseURL, htmltext.UnescapeString(st.ShowMoreURL))
		}
		if st.PaginationToken != "" {
			return continuationFromToken(baseURL, st.PaginationToken)
		}
	}

	return ""
}

// continuationFromToken synthesizes a continuation URL from a raw token,
// using the fixed query template plus the listing identifier taken from
// the starting URL's path.
func continuationFromToken(baseURL, token string) string {
	q := url.Values{}
	q.Set("filter", "unpurchased")
	q.Set("paginationToken", token)
	q.Set("itemsLayout", "LIST")
	q.Set("sort", "date-added")
	q.Set("type", "wishlist")
	q.Set("lid", listingID(baseURL))
	return resolveURL(baseURL, "/hz/wishlist/slv/items?"+q.Encode())
}

// listingID is the last path segment of the starting URL.
func listingID(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
