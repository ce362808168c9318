package journal

import "strings"

// nextIDAfter returns max(existing ids) + 1, or 1 for an empty collection.
// Stores call it after a bulk Replace so IDs stay unique across reloads.
func nextIDAfter[T any](items []T, id func(T) int) int {
	next := 1
	for _, it := range items {
		if id(it) >= next {
			next = id(it) + 1
		}
	}
	return next
}

// uniqueTags drops empty and repeated tags, keeping first-seen order.
func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func cloneTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	return append(out, tags...)
}

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
