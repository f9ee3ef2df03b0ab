// Package deeplink addresses a single record through a shareable URL
// fragment and remembers where the user was before opening it.
package deeplink

import (
	"net/url"
	"strings"
)

// fragmentPrefix is the sole supported deep-link shape: #b=<id>.
const fragmentPrefix = "#b="

// FormatFragment encodes a record identifier as a deep-link fragment.
func FormatFragment(id string) string {
	return fragmentPrefix + url.PathEscape(id)
}

// ParseFragment extracts the record identifier from a fragment. The
// second result is false for an absent, malformed, or foreign-shaped
// fragment; none of those is an error.
func ParseFragment(fragment string) (string, bool) {
	if !strings.HasPrefix(fragment, fragmentPrefix) {
		return "", false
	}
	encoded := fragment[len(fragmentPrefix):]
	if encoded == "" {
		return "", false
	}
	id, err := url.PathUnescape(encoded)
	if err != nil {
		return "", false
	}
	return id, true
}
