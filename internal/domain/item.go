package domain

import "github.com/shopspring/decimal"

// Item is a single listing entry captured during one run.
// ID is the stable identity used to match the same entry across runs:
// either the catalog identifier parsed from the detail-page link, or a
// content hash when no identifier is present.
type Item struct {
	// ID is unique within a snapshot.
	ID string

	// Title is the normalized display title (whitespace collapsed,
	// boilerplate link labels stripped). Never empty.
	Title string

	// Price is nil when no price could be parsed from the page.
	Price *decimal.Decimal

	// URL is the absolute detail-page URL.
	URL string
}

// SamePrice reports whether two items carry the same price,
// treating an unknown price as distinct from any known one.
func (i Item) SamePrice(o Item) bool {
	if i.Price == nil || o.Price == nil {
		return i.Price == nil && o.Price == nil
	}
	return i.Price.Equal(*o.Price)
}
