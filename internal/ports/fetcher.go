package ports

import "context"

// Fetcher retrieves one listing page as decoded text.
// Implementations handle retries, backoff, and rate-limit responses
// internally; an error means the page is unavailable for this run.
type Fetcher interface {
	// Fetch performs a blocking GET of url and returns the response body.
	Fetch(ctx context.Context, url string) (string, error)
}
