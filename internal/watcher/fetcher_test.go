package watcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayumu-labs/wishwatch/internal/domain"
)

func newRecordingFetcher(opts FetcherOptions) (*HTTPFetcher, *[]time.Duration) {
	f := NewHTTPFetcher(http.DefaultClient, opts, zerolog.Nop())
	var slept []time.Duration
	f.sleep = func(d time.Duration) { slept = append(slept, d) }
	return f, &slept
}

func TestFetchRetriesUntilSuccess(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f, slept := newRecordingFetcher(FetcherOptions{Attempts: 4, BackoffBase: 2 * time.Second})
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("slept %v, want %v", *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("slept[%d] = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestFetchRateLimitedResponseIsRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f, _ := newRecordingFetcher(FetcherOptions{Attempts: 2, BackoffBase: time.Second})
	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFetchExhaustedAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, slept := newRecordingFetcher(FetcherOptions{Attempts: 4, BackoffBase: 2 * time.Second})
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("slept %v, want %v", *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("slept[%d] = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestFetchSetsRequestHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f, _ := newRecordingFetcher(FetcherOptions{
		Attempts:       1,
		UserAgent:      "wishwatch-test/1.0",
		AcceptLanguage: "ja-JP,ja;q=0.9",
	})
	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "wishwatch-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotLang != "ja-JP,ja;q=0.9" {
		t.Errorf("Accept-Language = %q", gotLang)
	}
}

func TestFetchDecodesDeclaredCharset(t *testing.T) {
	// 商品 in Shift_JIS.
	sjis := []byte{0x8f, 0xa4, 0x95, 0x69}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=Shift_JIS")
		w.Write(sjis)
	}))
	defer srv.Close()

	f, _ := newRecordingFetcher(FetcherOptions{Attempts: 1})
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != "商品" {
		t.Errorf("body = %q, want 商品", body)
	}
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, _ := newRecordingFetcher(FetcherOptions{Attempts: 1})
	if _, err := f.Fetch(ctx, srv.URL); !errors.Is(err, domain.ErrFetch) {
		t.Errorf("err = %v, want ErrFetch", err)
	}
}
