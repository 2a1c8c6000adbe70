package ports

import (
	"context"

	"github.com/ayumu-labs/wishwatch/internal/domain"
)

// SnapshotRepository handles persistence of the last-known snapshot.
// Implementations persist the snapshot to disk (or other storage)
// atomically, so a crashed writer never leaves a torn state visible
// to a subsequent load.
type SnapshotRepository interface {
	// Load retrieves the last saved snapshot.
	// Returns (nil, nil) when no snapshot has been saved yet.
	// Returns an error only when stored state exists but cannot be read.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save persists the snapshot, replacing any prior content.
	// Implementations must write to a temporary path and rename.
	Save(ctx context.Context, snap domain.Snapshot) error
}
