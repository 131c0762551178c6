package nezamdoc

import (
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength is the maximum length in runes of a sanitized
// filename component. Long Arabic titles routinely exceed filesystem
// limits once an output directory and extension are appended.
const MaxFilenameLength = 180

// FallbackFilename is used when sanitizing removes everything.
const FallbackFilename = "document"

// SanitizeFilename reduces a document title to a string that is safe to
// use as a filename component on common filesystems. It keeps ASCII
// letters and digits, Arabic characters, spaces, underscores and hyphens,
// drops everything else, trims surrounding whitespace and truncates to
// MaxFilenameLength runes. Returns FallbackFilename when nothing remains.
//
// The function is idempotent: sanitizing an already-sanitized string
// returns it unchanged.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if keepFilenameRune(r) {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	if utf8.RuneCountInString(safe) > MaxFilenameLength {
		safe = strings.TrimSpace(string([]rune(safe)[:MaxFilenameLength]))
	}
	if safe == "" {
		return FallbackFilename
	}
	return safe
}

func keepFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r == ' ', r == '_', r == '-':
		return true
	}
	return false
}
