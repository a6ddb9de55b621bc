package branchname

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the maximum length of a summary slug in bytes.
const MaxSlugLength = 100

var (
	// nonSlugChars matches anything other than ASCII word chars, whitespace, or hyphens.
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)

	// separatorRuns matches runs of whitespace, underscores, and hyphens.
	separatorRuns = regexp.MustCompile(`[\s_-]+`)

	lower = cases.Lower(language.Und)
)

// Slugify converts free text into a lowercase, hyphen-separated token that is
// safe inside a branch name.
//
// Accented letters are folded to their ASCII base ("Café" -> "cafe"); other
// non-ASCII characters are dropped. The result is at most MaxSlugLength bytes
// and may end mid-word, but never with a hyphen, so Slugify is idempotent.
func Slugify(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(spaceToASCII, s)
	s = foldDiacritics(s)
	s = lower.String(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}

	return s
}

// spaceToASCII maps Unicode whitespace (NBSP, U+3000, \v, BOM) to ' ' so
// the ASCII-only \s classes treat it as a word break.
func spaceToASCII(r rune) rune {
	if unicode.IsSpace(r) || r == '\ufeff' {
		return ' '
	}
	return r
}

// foldDiacritics strips combining marks after canonical decomposition.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
