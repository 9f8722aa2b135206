package memory

import (
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/orac/internal/core"
)

const minTagLength = 4

// Tags derives the tag set of a query: lower-cased, space-separated words
// longer than three characters, first occurrence kept.
func Tags(content string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, word := range strings.Split(strings.ToLower(content), " ") {
		if utf8.RuneCountInString(word) < minTagLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, word)
	}
	return tags
}

// Match returns the items whose content contains the query, or whose tags
// appear inside the query. Comparison is case-insensitive and order is kept.
func Match(items []core.MemoryItem, query string) []core.MemoryItem {
	q := strings.ToLower(query)
	var out []core.MemoryItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Content), q) || tagHit(item.Tags, q) {
			out = append(out, item)
		}
	}
	return out
}

func tagHit(tags []string, lowerQuery string) bool {
	for _, tag := range tags {
		if strings.Contains(lowerQuery, tag) {
			return true
		}
	}
	return false
}
