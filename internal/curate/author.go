package curate

import (
	"strings"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// AuthorSeparator joins multiple formatted author names for display.
const AuthorSeparator = " · "

// rawSeparators are the conjunctions and delimiters OCR rows use
// between author names. All are unified before splitting.
var rawSeparators = []string{" und ", " & ", "&", ";", "/"}

// AuthorDisplay normalizes a raw author field into "Family, Given"
// form. Multiple authors are split on the usual separators and joined
// with AuthorSeparator. Names that already contain a comma are assumed
// to be in family-first form and left untouched; single-token names
// pass through unchanged. Empty input yields empty output.
func AuthorDisplay(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	unified := raw
	for _, sep := range rawSeparators {
		unified = strings.ReplaceAll(unified, sep, AuthorSeparator)
	}

	var formatted []string
	for _, candidate := range strings.Split(unified, AuthorSeparator) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		formatted = append(formatted, formatSingleAuthor(candidate))
	}
	return strings.Join(formatted, AuthorSeparator)
}

// formatSingleAuthor converts "Given Middle Family" to
// "Family, Given Middle". Comma-bearing and single-token names are
// returned as-is, which makes the formatter idempotent.
func formatSingleAuthor(name string) string {
	if strings.Contains(name, ",") {
		return name
	}
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return name
	}
	last := tokens[len(tokens)-1]
	return last + ", " + strings.Join(tokens[:len(tokens)-1], " ")
}

// AuthorSortKey returns the lowercase primary author for ordering:
// the first display segment, falling back to the raw author field,
// falling back to empty.
func AuthorSortKey(rec *domain.Record) string {
	display := rec.AuthorDisplay
	if display == "" {
		display = rec.Author
	}
	if display == "" {
		return ""
	}
	first, _, _ := strings.Cut(display, AuthorSeparator)
	return strings.ToLower(strings.TrimSpace(first))
}
