package textutil

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var alphaNumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// SafeUnescape decodes percent-encoding, returning the input unchanged when it
// is not valid encoding
func SafeUnescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// CleanFilename strips diacritics and replaces whitespace-like separators with
// underscores
func CleanFilename(filename string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	deburred, _, err := transform.String(t, filename)
	if err != nil {
		deburred = filename
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '+', ' ', '\n':
			return '_'
		}
		return r
	}, deburred)
}

// ExtensionFromFilename returns the file extension including the dot, or empty
// when the extension does not look like one. Extensions are usually no longer
// than 4 characters and consist only of alphanumeric characters.
func ExtensionFromFilename(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 5 || len(ext) < 2 || !alphaNumeric.MatchString(ext[1:]) {
		return ""
	}
	return ext
}

// TrimFilename shortens a filename to maxLength while keeping its extension
func TrimFilename(filename string, maxLength int) string {
	if len(filename) < maxLength {
		return filename
	}
	ext := ExtensionFromFilename(filename)
	return filename[:maxLength-len(ext)-1] + "." + strings.TrimPrefix(ext, ".")
}
