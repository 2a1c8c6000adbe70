package domain

// PriceChange pairs the previous and current snapshot entry of one item
// whose price differs between the two.
type PriceChange struct {
	Old Item
	New Item
}

// Diff is the set difference between two snapshots, keyed by item ID.
// It is computed once per run and consumed by the notifier.
type Diff struct {
	Added        []Item
	Removed      []Item
	PriceChanges []PriceChange
}

// HasChanges reports whether any component of the diff is non-empty.
func (d Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.PriceChanges) > 0
}

// DiffItems compares two item collections keyed by ID. Pure function:
// added items appear in curr but not prev, removed the converse, and
// price changes cover IDs present in both with differing prices
// (including known-to-unknown transitions in either direction).
// Output preserves the input ordering of the side each entry came from.
func DiffItems(prev, curr []Item) Diff {
	prevByID := make(map[string]Item, len(prev))
	for _, it := range prev {
		prevByID[it.ID] = it
	}
	currByID := make(map[string]Item, len(curr))
	for _, it := range curr {
		currByID[it.ID] = it
	}

	var diff Diff
	for _, it := range curr {
		old, ok := prevByID[it.ID]
		if !ok {
			diff.Added = append(diff.Added, it)
			continue
		}
		if !old.SamePrice(it) {
			diff.PriceChanges = append(diff.PriceChanges, PriceChange{Old: old, New: it})
		}
	}
	for _, it := range prev {
		if _, ok := currByID[it.ID]; !ok {
			diff.Removed = append(diff.Removed, it)
		}
	}
	return diff
}
