package common

import "strings"

// HasAny reports whether s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// JoinEntries renders "prefix: a, b, c".
func JoinEntries(prefix string, entries []string) string {
	return prefix + ": " + strings.Join(entries, ", ")
}
