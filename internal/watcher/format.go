package watcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/ayumu-labs/wishwatch/internal/domain"
)

// Message templates. The listing audience reads Japanese, so the
// notification text is fixed-language.
const (
	baselineMessage   = "ほしい物リスト ベースラインを保存しました (初回実行)"
	changedHeader     = "ほしい物リスト 更新 (変化あり)"
	unchangedHeader   = "ほしい物リスト 更新 (変化なし)"
	errorTemplate     = "ウォッチャーでエラーが発生しました: %v"
	addedSection      = "【追加】"
	removedSection    = "【削除】"
	priceSection      = "【価格変更】"
	currentSection    = "【現在のリスト】"
	unknownPriceLabel = "価格不明"
)

// formatDiffMessage renders a changed-run notification: header, total
// line, then the non-empty sections in added/removed/price-change order.
func formatDiffMessage(diff domain.Diff, current []domain.Item) string {
	lines := []string{changedHeader, totalLine(current)}

	if len(diff.Added) > 0 {
		lines = append(lines, "\n"+addedSection)
		for _, item := range sortedByTitle(diff.Added) {
			lines = append(lines, "- "+item.Title+priceSuffix(item.Price))
		}
	}

	if len(diff.Removed) > 0 {
		lines = append(lines, "\n"+removedSection)
		for _, item := range sortedByTitle(diff.Removed) {
			lines = append(lines, "- "+item.Title)
		}
	}

	if len(diff.PriceChanges) > 0 {
		lines = append(lines, "\n"+priceSection)
		changes := append([]domain.PriceChange(nil), diff.PriceChanges...)
		sort.SliceStable(changes, func(i, j int) bool {
			return strings.ToLower(changes[i].New.Title) < strings.ToLower(changes[j].New.Title)
		})
		for _, ch := range changes {
			lines = append(lines, fmt.Sprintf("- %s: %s → %s (%s)",
				ch.New.Title, priceLabel(ch.Old.Price), priceLabel(ch.New.Price), deltaLabel(ch.Old.Price, ch.New.Price)))
		}
	}

	return strings.Join(lines, "\n")
}

// formatNoChangeMessage renders an unchanged-run notification with the
// full current listing.
func formatNoChangeMessage(current []domain.Item) string {
	lines := []string{unchangedHeader, totalLine(current), "", currentSection}
	for _, item := range sortedByTitle(current) {
		lines = append(lines, "- "+item.Title+priceSuffix(item.Price))
	}
	return strings.Join(lines, "\n")
}

func formatErrorMessage(err error) string {
	return fmt.Sprintf(errorTemplate, err)
}

// totalLine sums all known prices; when no item has a known price the
// total reads unknown rather than zero.
func totalLine(items []domain.Item) string {
	total := decimal.Zero
	found := false
	for _, item := range items {
		if item.Price == nil {
			continue
		}
		total = total.Add(*item.Price)
		found = true
	}
	if !found {
		return "総額: 不明"
	}
	return "総額: " + yen(total)
}

// sortedByTitle returns a copy ordered case-insensitively by title.
func sortedByTitle(items []domain.Item) []domain.Item {
	sorted := append([]domain.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})
	return sorted
}

func yen(d decimal.Decimal) string {
	return "¥" + humanize.Comma(d.IntPart())
}

// priceSuffix renders the parenthesized per-item price marker.
func priceSuffix(p *decimal.Decimal) string {
	if p == nil {
		return " (" + unknownPriceLabel + ")"
	}
	return " (" + yen(*p) + ")"
}

// priceLabel renders the bare price for before/after comparisons.
func priceLabel(p *decimal.Decimal) string {
	if p == nil {
		return unknownPriceLabel
	}
	return yen(*p)
}

// deltaLabel renders a signed, thousands-separated price delta, or a
// textual marker when either side lacks a known price.
func deltaLabel(before, after *decimal.Decimal) string {
	if before == nil || after == nil {
		if (before == nil) != (after == nil) {
			return "変動"
		}
		return "変更なし"
	}
	delta := after.Sub(*before)
	sign := "+"
	if delta.IsNegative() {
		sign = "-"
	}
	return sign + yen(delta.Abs())
}
