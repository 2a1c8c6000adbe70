package domain

import "errors"

// Error taxonomy for a watcher run. Every failure that reaches the
// supervisor wraps exactly one of these sentinels so it can be checked
// with errors.Is and classified for the run report.
var (
	// ErrFetch is returned when a page fetch fails after all retry attempts.
	ErrFetch = errors.New("wishwatch: fetch failed")

	// ErrExtraction is returned when the page structure is not recognized.
	ErrExtraction = errors.New("wishwatch: page structure not recognized")

	// ErrPagination is returned when the page cap is exceeded or the
	// listing yields no items across all pages.
	ErrPagination = errors.New("wishwatch: pagination failed")

	// ErrState is returned when an existing state file cannot be read or parsed.
	ErrState = errors.New("wishwatch: state file unreadable")

	// ErrNotify is returned when webhook delivery fails.
	ErrNotify = errors.New("wishwatch: notification delivery failed")
)

// Kind names the taxonomy bucket of a run failure.
type Kind string

const (
	KindNone       Kind = ""
	KindFetch      Kind = "fetch"
	KindExtraction Kind = "extraction"
	KindPagination Kind = "pagination"
	KindState      Kind = "state"
	KindNotify     Kind = "notify"
	KindUnknown    Kind = "unknown"
)

// KindOf classifies an error into its taxonomy bucket.
// A nil error maps to KindNone; anything outside the taxonomy to KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrFetch):
		return KindFetch
	case errors.Is(err, ErrExtraction):
		return KindExtraction
	case errors.Is(err, ErrPagination):
		return KindPagination
	case errors.Is(err, ErrState):
		return KindState
	case errors.Is(err, ErrNotify):
		return KindNotify
	default:
		return KindUnknown
	}
}
