package watcher

import (
	"net/url"
	"strings"
	"testing"
)

const baseListURL = "https://www.amazon.co.jp/hz/wishlist/ls/ABC123XYZ"

func TestResolveContinuationHiddenInput(t *testing.T) {
	page := `
<div id="g-items"></div>
<input type="hidden" name="showMoreUrl"
  value="/hz/wishlist/slv/items?filter=unpurchased&amp;paginationToken=tok-1&amp;lid=ABC123XYZ">`

	got := resolveContinuation(parseNode(t, page), baseListURL)
	if got == "" {
		t.Fatal("resolveContinuation returned empty, want URL")
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", got, err)
	}
	if u.Host != "www.amazon.co.jp" {
		t.Errorf("host = %q", u.Host)
	}
	q := u.Query()
	if q.Get("paginationToken") != "tok-1" {
		t.Errorf("paginationToken = %q, want tok-1", q.Get("paginationToken"))
	}
	if q.Get("filter") != "unpurchased" {
		t.Errorf("filter = %q, want unpurchased", q.Get("filter"))
	}
}

func TestResolveContinuationStateScriptShowMoreURL(t *testing.T) {
	page := `
<script type="a-state" data-a-state='{"key":"scrollState"}'>
  {"showMoreUrl":"/hz/wishlist/slv/items?paginationToken=tok-2&amp;lid=ABC123XYZ"}
</script>`

	got := resolveContinuation(parseNode(t, page), baseListURL)
	u, err := url.Parse(got)
	if err != nil || got == "" {
		t.Fatalf("resolveContinuation = %q, err %v", got, err)
	}
	if u.Query().Get("paginationToken") != "tok-2" {
		t.Errorf("paginationToken = %q, want tok-2", u.Query().Get("paginationToken"))
	}
}

func TestResolveContinuationStateScriptToken(t *testing.T) {
	page := `
<script type="a-state" data-a-state='{"key":"scrollState"}'>
  {"paginationToken":"tok-3"}
</script>`

	got := resolveContinuation(parseNode(t, page), baseListURL)
	if got == "" {
		t.Fatal("resolveContinuation returned empty, want synthesized URL")
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", got, err)
	}
	if u.Path != "/hz/wishlist/slv/items" {
		t.Errorf("path = %q, want /hz/wishlist/slv/items", u.Path)
	}
	q := u.Query()
	want := map[string]string{
		"filter":          "unpurchased",
		"paginationToken": "tok-3",
		"itemsLayout":     "LIST",
		"sort":            "date-added",
		"type":            "wishlist",
		"lid":             "ABC123XYZ",
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), v)
		}
	}
}

func TestResolveContinuationIgnoresUnrelatedState(t *testing.T) {
	page := `
<script type="a-state" data-a-state='{"key":"navState"}'>{"paginationToken":"tok-x"}</script>
<script type="a-state" data-a-state='{"key":"scrollState"}'>not json</script>`

	if got := resolveContinuation(parseNode(t, page), baseListURL); got != "" {
		t.Errorf("resolveContinuation = %q, want empty", got)
	}
}

func TestResolveContinuationAbsent(t *testing.T) {
	if got := resolveContinuation(parseNode(t, `<div id="g-items"></div>`), baseListURL); got != "" {
		t.Errorf("resolveContinuation = %q, want empty", got)
	}
}

func TestListingID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{baseListURL, "ABC123XYZ"},
		{"https://www.amazon.co.jp/hz/wishlist/ls/ABC123XYZ/", "ABC123XYZ"},
		{"https://www.amazon.co.jp/", ""},
	}
	for _, tt := range tests {
		if got := listingID(tt.in); got != tt.want {
			t.Errorf("listingID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContinuationFromTokenEscapesToken(t *testing.T) {
	got := continuationFromToken(baseListURL, "a+b/c=")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", got, err)
	}
	if tok := u.Query().Get("paginationToken"); tok != "a+b/c=" {
		t.Errorf("paginationToken round-trip = %q, want a+b/c=", tok)
	}
	if !strings.HasPrefix(got, "https://www.amazon.co.jp/hz/wishlist/slv/items?") {
		t.Errorf("got = %q, want items path on the listing host", got)
	}
}
