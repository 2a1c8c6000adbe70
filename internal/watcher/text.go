package watcher

import "strings"

// Boilerplate link labels that must never be mistaken for an item title.
// These are the literal labels the target renders on auxiliary links.
var ignoredTitleTexts = map[string]bool{
	"":         true,
	"もっと見る":    true,
	"詳細を見る":    true,
	"今すぐチェック":  true,
	"すべて表示":    true,
}

// cleanText collapses whitespace runs to single spaces and trims.
func cleanText(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// sanitizeTitle normalizes a candidate title: whitespace is collapsed,
// boilerplate phrases are stripped, and whitespace is collapsed again.
func sanitizeTitle(v string) string {
	cleaned := cleanText(v)
	if cleaned == "" {
		return ""
	}
	for phrase := range ignoredTitleTexts {
		if phrase == "" {
			continue
		}
		cleaned = strings.ReplaceAll(cleaned, phrase, " ")
	}
	return cleanText(cleaned)
}
