package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid     = regexp.MustCompile(`[^a-z0-9-]+`)
	slugMultiHyphen = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug: accents decomposed and
// stripped, lowercased, spaces replaced with hyphens, everything else
// outside [a-z0-9-] removed.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, _ := transform.String(t, s)

	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, " ", "-")
	out = slugInvalid.ReplaceAllString(out, "")
	out = slugMultiHyphen.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
