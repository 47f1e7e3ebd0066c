package search

import "strings"

// Normalize prepares text for fuzzy substring comparison: it lowercases,
// strips spaces, hyphens, and underscores, and folds a simple trailing
// plural ("labs" -> "lab"). The plural folding is deliberately naive:
// "boxes" becomes "boxe" and irregular plurals are untouched, but both
// query and candidate pass through the same function, so matching stays
// consistent. Normalize is total and idempotent; empty input yields "".
func Normalize(text string) string {
	normalized := strings.ToLower(text)
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)
	if len(normalized) > 2 && strings.HasSuffix(normalized, "s") {
		normalized = normalized[:len(normalized)-1]
	}
	return normalized
}
