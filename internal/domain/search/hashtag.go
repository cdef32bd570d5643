package search

import (
	"regexp"
	"strings"
)

// A hashtag is '#' followed by letters (Unicode), digits or underscores.
var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractHashtags returns every hashtag occurrence in content, lowercased and
// with the leading '#' stripped, in order of appearance. Duplicates are kept
// so callers can count occurrences.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// NormalizeHashtagQuery strips surrounding whitespace and a leading '#', and
// lowercases the rest. An empty result means there is nothing to search for.
func NormalizeHashtagQuery(text string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(text), "#"))
}
