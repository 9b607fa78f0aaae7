// Package pkg holds small helpers shared by collectors.
package pkg

import "strings"

// MatchAny reports whether s matches one of patterns, ignoring case. A
// pattern ending in "*" matches as a prefix, anything else as a substring.
func MatchAny(s string, patterns ...string) bool {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, p := range patterns {
		p = strings.ToLower(p)

		switch {
		case strings.HasSuffix(p, "*"):
			if strings.HasPrefix(s, strings.TrimSuffix(p, "*")) {
				return true
			}
		case p != "" && strings.Contains(s, p):
			return true
		}
	}

	return false
}
