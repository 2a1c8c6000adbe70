package domain

import "time"

// Snapshot is the full set of items observed in one run.
// It is created once per run and never mutated afterwards.
type Snapshot struct {
	// CapturedAt is when the listing was read.
	CapturedAt time.Time

	// Items in page order, deduplicated by ID.
	Items []Item
}
