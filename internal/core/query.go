package core

import "strings"

// Stateless query helpers over a collection's full value sequence.

func filterValues[V any](in []V, keep func(V) bool) []V {
	var out []V
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func firstMatch[V any](in []V, keep func(V) bool) (V, bool) {
	for _, v := range in {
		if keep(v) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// matchesName reports whether name contains query, case-insensitively.
func matchesName(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
