package watcher

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// extractPrice resolves an item's price through a priority cascade over
// the competing render shapes, stopping at the first match:
//
//  1. the all-inclusive offscreen price text
//  2. a split whole/fraction pair, concatenated as whole.fraction
//  3. the generic price-colored text fallback
//
// An unparseable or absent price yields nil, never an error.
func extractPrice(n ports.Node) *decimal.Decimal {
	if el := n.SelectOne(".a-price .a-offscreen"); el != nil {
		if text := strings.TrimSpace(el.Text()); text != "" {
			return parsePrice(text)
		}
	}

	if whole := n.SelectOne(".a-price-whole"); whole != nil {
		text := strings.TrimSpace(whole.Text())
		if frac := n.SelectOne(".a-price-fraction"); frac != nil {
			text = text + "." + strings.TrimSpace(frac.Text())
		}
		return parsePrice(text)
	}

	if el := n.SelectOne(".a-color-price"); el != nil {
		if text := strings.TrimSpace(el.Text()); text != "" {
			return parsePrice(text)
		}
	}

	return nil
}

// parsePrice strips currency symbols and thousands separators and parses
// the remainder as a decimal amount.
func parsePrice(text string) *decimal.Decimal {
	cleaned := strings.NewReplacer("¥", "", "￥", "", ",", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}
