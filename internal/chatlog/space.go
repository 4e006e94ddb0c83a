package chatlog

import (
	"strings"
	"unicode"
)

// Pattern fragments with Unicode semantics. RE2 keeps \s, \d and \b ASCII only.
const (
	spaceClass = `[\s\x0b\x{1c}-\x{1f}\x{85}\p{Z}]`
	wordClass  = `[\p{L}\p{N}_]`
	digitClass = `\p{Nd}`
)

// isSpace matches spaceClass: Unicode white space plus the ASCII information
// separators U+001C to U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
