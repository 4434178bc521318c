// Package names turns player names into file-system and URL safe tokens.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9]+`)
)

// suffixes are generational name suffixes ignored when looking players up.
var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// letters maps Latin letters that NFD leaves intact to ASCII.
var letters = strings.NewReplacer(
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"þ", "th", "Þ", "Th", "ð", "d", "Ð", "D", "ı", "i",
)

// Fold strips diacritics so "José De León" becomes "Jose De Leon". Latin
// letters without a decomposition (ø, ł, ß and friends) are transliterated.
// Other scripts pass through unchanged.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return letters.Replace(out)
}

// FileToken returns the name used for a pitcher's game-log file (without extension).
func FileToken(name string) string {
	return unsafeFileChars.ReplaceAllString(Fold(name), "_")
}

// Slug returns the lower-case, dash separated URL form of a name.
func Slug(name string) string {
	s := strings.ToLower(Fold(strings.TrimSpace(name)))
	return strings.Trim(nonSlugChars.ReplaceAllString(s, "-"), "-")
}

// StripSuffixes drops generational suffixes ("Jr.", "III", ...) from name parts.
func StripSuffixes(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if suffixes[strings.TrimRight(strings.ToLower(p), ".")] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FirstLast splits a full name into the first and last parts used for lookup.
func FirstLast(full string) (first, last string, ok bool) {
	parts := StripSuffixes(strings.Fields(full))
	if len(parts) == 0 {
		return "", "", false
	}
	return parts[0], parts[len(parts)-1], true
}
