package listview

import "strings"

// matchesSearch reports whether any field contains term, ignoring case.
// An empty term matches every row. Spaces in term are significant.
func matchesSearch(fields []string, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// filterRows applies the tab predicate then the search term, keeping order
func filterRows[T any](rows []T, tab Tab[T], fields func(T) []string, term string) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if tab.Match != nil && !tab.Match(r) {
			continue
		}
		if fields != nil && !matchesSearch(fields(r), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}
