// Package curate decides which raw catalog rows are trustworthy and
// derives display-quality attributes for the rows that survive.
//
// All functions are pure and total over arbitrary string input: absent
// fields are treated as empty, and nothing here returns an error.
package curate

import (
	"strings"
	"unicode"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// Digitization-status markers that protect a row from the gibberish
// heuristics. Rows imported by the automated review pipeline, or
// published online and verified by hand, are always kept.
const (
	statusAutoReviewed  = "gemini-import"
	statusPublishedPart = "online"
	statusVerifiedPart  = "verifiz"
)

// Vowels counted by the low-vowel-density signal, including the German
// umlauts. Compared after lowercasing.
const vowels = "aeiouyäöü"

// Punctuation allowed by the whitelist signal on top of letters,
// digits, and whitespace.
const allowedPunct = ",.'-()!?"

// noiseSymbols are characters typical of OCR line noise: brackets,
// pipe, math operators, typographic quotes, currency and section signs.
const noiseSymbols = "[]{}|<>^~*+=_#@\"§$€£¥¢%«»„“”‚‘’`´"

// ShouldKeep reports whether a raw row is trustworthy enough to enter
// the canonical dataset. Decision order:
//
//  1. Verified digitization status always keeps the row.
//  2. A non-empty ISBN always keeps the row.
//  3. Title and author both shorter than 4 runes rejects it.
//  4. Otherwise the row is rejected only when title AND author are
//     both judged gibberish. An empty author counts as gibberish, so a
//     readable title alone can save a row but an author alone cannot.
func ShouldKeep(raw *domain.RawRecord) bool {
	status := strings.ToLower(raw.Status)
	if strings.Contains(status, statusAutoReviewed) {
		return true
	}
	if strings.Contains(status, statusPublishedPart) && strings.Contains(status, statusVerifiedPart) {
		return true
	}

	if strings.TrimSpace(raw.ISBN) != "" {
		return true
	}

	title := strings.TrimSpace(raw.Title)
	author := strings.TrimSpace(raw.Author)
	if len([]rune(title)) < 4 && len([]rune(author)) < 4 {
		return false
	}

	titleGibberish := LooksGibberish(title)
	authorGibberish := author == "" || LooksGibberish(author)
	return !(titleGibberish && authorGibberish)
}

// LooksGibberish heuristically judges whether a string is OCR noise
// rather than a real title or author. Empty input is always gibberish.
// Otherwise five independent signals each contribute one point; two or
// more points mean gibberish.
func LooksGibberish(s string) bool {
	return gibberishScore(s) >= 2
}

// gibberishScore accumulates one point per noise signal.
func gibberishScore(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 2
	}

	runes := []rune(s)
	total := len(runes)

	vowelCount := 0
	outsideWhitelist := 0
	noiseCount := 0
	for _, r := range runes {
		lower := unicode.ToLower(r)
		if strings.ContainsRune(vowels, lower) {
			vowelCount++
		}
		if !isWhitelisted(r) {
			outsideWhitelist++
		}
		if strings.ContainsRune(noiseSymbols, r) {
			noiseCount++
		}
	}

	score := 0

	// Low vowel density: real words need vowels.
	if total >= 12 && vowelCount <= 1 {
		score++
	}

	// High punctuation ratio against the whitelist.
	if float64(outsideWhitelist)/float64(total) > 0.22 {
		score++
	}

	// Escape-like artifacts from broken text extraction.
	if strings.Contains(s, `\x`) || strings.Count(s, `\`) >= 2 {
		score++
	}

	// Cumulative symbol noise.
	if noiseCount >= 3 {
		score++
	}

	// Fragmented tokens: at least half of the tokens are single runes.
	tokens := strings.Fields(s)
	if len(tokens) > 0 {
		single := 0
		for _, t := range tokens {
			if len([]rune(t)) == 1 {
				single++
			}
		}
		if single*2 >= len(tokens) {
			score++
		}
	}

	return score
}

// isWhitelisted reports whether the rune is ordinary text: a letter
// (including umlauts and ß), a digit, whitespace, or mild punctuation.
func isWhitelisted(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	case strings.ContainsRune("äöüÄÖÜß", r):
		return true
	default:
		return strings.ContainsRune(allowedPunct, r)
	}
}
