package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackSlug = "download"

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// foldAccents decomposes the input and strips combining marks so accented
// letters reduce to their ASCII base form.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FileSlug normalizes free text into a safe lowercase filename stem:
// accents folded, non-alphanumeric runs collapsed to single underscores.
func FileSlug(value string) string {
	folded, _, err := transform.String(foldAccents, value)
	if err != nil {
		folded = value
	}
	slug := strings.ToLower(strings.TrimSpace(folded))
	slug = slugSeparators.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
