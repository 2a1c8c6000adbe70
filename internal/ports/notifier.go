package ports

import "context"

// Notifier delivers a human-readable message about the run outcome.
// Delivery is at-most-once per call; the caller decides whether a
// delivery failure is fatal.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
