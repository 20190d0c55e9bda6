package matching

import (
	"regexp"
	"strings"
)

// Vocabulary stripped before comparison. These words routinely differ
// between a catalog title and a storefront listing of the same game.
var (
	qualityPattern  = regexp.MustCompile(`\b(goty|game of the year|ultimate|deluxe|premium|collector|special|limited|director's cut|directors cut)\b`)
	formatPattern   = regexp.MustCompile(`\b(edition|version|remaster|remastered|hd|4k|enhanced|definitive)\b`)
	groupingPattern = regexp.MustCompile(`\b(pack|bundle|collection|anthology|trilogy|saga)\b`)
	releasePattern  = regexp.MustCompile(`\bv\d+\.\d+\b`)
	platformPattern = regexp.MustCompile(`\b(pc|ps4|ps5|xbox|nintendo|switch|steam)\b`)
	yearPattern     = regexp.MustCompile(`\(\d{4}\)`)
	punctPattern    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// Normalize reduces a raw game title to a lowercase comparison form:
// edition and quality markers, platform tokens, release versions, and
// parenthesized years are removed; punctuation becomes spaces; whitespace
// is collapsed. The result contains only lowercase alphanumeric tokens
// separated by single spaces. Normalize is total and idempotent; a title
// made entirely of stripped tokens normalizes to the empty string.
func Normalize(title string) string {
	if title == "" {
		return ""
	}
	normalized := strings.ToLower(title)
	normalized = releasePattern.ReplaceAllString(normalized, " ")
	normalized = qualityPattern.ReplaceAllString(normalized, " ")
	normalized = formatPattern.ReplaceAllString(normalized, " ")
	normalized = groupingPattern.ReplaceAllString(normalized, " ")
	normalized = platformPattern.ReplaceAllString(normalized, " ")
	normalized = yearPattern.ReplaceAllString(normalized, " ")
	normalized = punctPattern.ReplaceAllString(normalized, " ")
	normalized = spacePattern.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
