// Package fs persists the last-known snapshot as a JSON state file.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayumu-labs/wishwatch/internal/domain"
)

const defaultStateFileName = "state.json"

// stateRecord is the durable on-disk schema. Unknown extra fields are
// tolerated on read; a missing items array means an empty snapshot.
type stateRecord struct {
	LastCheckedAt string       `json:"last_checked_at"`
	Items         []itemRecord `json:"items"`
}

type itemRecord struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Price *float64 `json:"price"`
	URL   string   `json:"url"`
}

// SnapshotFileRepository implements ports.SnapshotRepository using a
// JSON file replaced atomically on save.
type SnapshotFileRepository struct {
	dir  string
	name string
}

// NewSnapshotFileRepository creates a repository storing its state file
// under dir. An empty name selects the default filename.
func NewSnapshotFileRepository(dir, name string) *SnapshotFileRepository {
	if name == "" {
		name = defaultStateFileName
	}
	return &SnapshotFileRepository{dir: dir, name: name}
}

// Load retrieves the last saved snapshot from disk.
// Returns (nil, nil) when no state file exists yet; an existing file
// that cannot be read or parsed is a state error.
func (r *SnapshotFileRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrState, r.Path(), err)
	}

	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrState, r.Path(), err)
	}

	snap := rec.snapshot()
	return &snap, nil
}

// Save persists the snapshot atomically: write to a temporary path,
// then rename over the live file, so a crashing writer never leaves a
// torn state visible to a subsequent load.
func (r *SnapshotFileRepository) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return fmt.Errorf("%w: state dir: %v", domain.ErrState, err)
	}

	data, err := json.MarshalIndent(record(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrState, err)
	}

	tmp := r.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrState, tmp, err)
	}
	if err := os.Rename(tmp, r.Path()); err != nil {
		return fmt.Errorf("%w: rename %s: %v", domain.ErrState, tmp, err)
	}
	return nil
}

// Path returns the full path to the state file.
func (r *SnapshotFileRepository) Path() string {
	return filepath.Join(r.dir, r.name)
}

func record(snap domain.Snapshot) stateRecord {
	rec := stateRecord{
		LastCheckedAt: snap.CapturedAt.Format(time.RFC3339Nano),
		Items:         make([]itemRecord, 0, len(snap.Items)),
	}
	for _, it := range snap.Items {
		ir := itemRecord{ID: it.ID, Title: it.Title, URL: it.URL}
		if it.Price != nil {
			f := it.Price.InexactFloat64()
			ir.Price = &f
		}
		rec.Items = append(rec.Items, ir)
	}
	return rec
}

// snapshot reconstructs the domain value. A missing or unparseable
// timestamp substitutes the current time; it is never written back as
// anything but what the next save produces.
func (rec stateRecord) snapshot() domain.Snapshot {
	capturedAt, err := time.Parse(time.RFC3339Nano, rec.LastCheckedAt)
	if rec.LastCheckedAt == "" || err != nil {
		capturedAt = time.Now().UTC()
	}
	snap := domain.Snapshot{CapturedAt: capturedAt}
	for _, ir := range rec.Items {
		it := domain.Item{ID: ir.ID, Title: ir.Title, URL: ir.URL}
		if ir.Price != nil {
			d := decimal.NewFromFloat(*ir.Price)
			it.Price = &d
		}
		snap.Items = append(snap.Items, it)
	}
	return snap
}
