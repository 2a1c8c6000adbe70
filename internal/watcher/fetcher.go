package watcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/ayumu-labs/wishwatch/internal/domain"
	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// FetcherOptions configure the retry policy and request headers of the
// listing fetcher. Zero values fall back to the defaults below.
type FetcherOptions struct {
	// Attempts is the maximum number of tries per URL (default 4).
	Attempts int

	// BackoffBase is the first retry delay; it doubles per failure
	// (default 2s).
	BackoffBase time.Duration

	// RequestRate caps outbound listing requests per second.
	// Zero or negative means no pacing.
	RequestRate float64

	UserAgent      string
	AcceptLanguage string
}

const (
	defaultFetchAttempts = 4
	defaultBackoffBase   = 2 * time.Second
)

// HTTPFetcher implements ports.Fetcher over a plain HTTP GET with
// bounded retries and exponential backoff. Every failed attempt is
// retryable: network errors, non-2xx statuses, and explicit rate
// limiting alike, since transient edge infrastructure is common for
// this kind of target.
type HTTPFetcher struct {
	client  ports.HTTPClient
	opts    FetcherOptions
	limiter *rate.Limiter
	sleep   func(time.Duration)
	log     zerolog.Logger
}

// NewHTTPFetcher creates a fetcher using the given HTTP client.
func NewHTTPFetcher(client ports.HTTPClient, opts FetcherOptions, log zerolog.Logger) *HTTPFetcher {
	if opts.Attempts <= 0 {
		opts.Attempts = defaultFetchAttempts
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	var limiter *rate.Limiter
	if opts.RequestRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestRate), 1)
	}
	return &HTTPFetcher{
		client:  client,
		opts:    opts,
		limiter: limiter,
		sleep:   time.Sleep,
		log:     log,
	}
}

// Fetch performs a GET with up to opts.Attempts tries, sleeping the
// backoff delay between failures. After the final attempt the terminal
// error wraps the last underlying cause.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	bo := newBackoff(f.opts.BackoffBase, 0)
	var lastErr error

	for attempt := 1; attempt <= f.opts.Attempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
			}
		}

		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		f.log.Warn().
			Int("attempt", attempt).
			Int("max_attempts", f.opts.Attempts).
			Str("url", url).
			Err(err).
			Msg("listing fetch failed")
		if attempt < f.opts.Attempts {
			f.sleep(bo.Next())
		}
	}

	return "", fmt.Errorf("%w: %d attempts exhausted: %w", domain.ErrFetch, f.opts.Attempts, lastErr)
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.opts.UserAgent != "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}
	if f.opts.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.opts.AcceptLanguage)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("HTTP 429 Too Many Requests")
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Decode per the server-declared charset, defaulting to UTF-8.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		reader = resp.Body
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
