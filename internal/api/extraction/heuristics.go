package extraction

import "strings"

const (
	atDelimiter    = " at "
	fromDelimiter  = " from "
	forDelimiter   = " for "
	parenDelimiter = " ("
)

// indexFold and lastIndexFold search for an ASCII separator ignoring ASCII
// case. Multi-byte UTF-8 sequences never match an ASCII byte, so byte offsets
// stay valid in s.
func indexFold(s, sep string) int {
	n := len(sep)
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], sep) {
			return i
		}
	}
	return -1
}

func lastIndexFold(s, sep string) int {
	n := len(sep)
	for i := len(s) - n; i >= 0; i-- {
		if equalFoldASCII(s[i:i+n], sep) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// restaurantName takes the text after the last " at " (or, failing that, the
// last " from ") and drops a trailing parenthetical.
func restaurantName(content string) (string, bool) {
	for _, delim := range []string{atDelimiter, fromDelimiter} {
		idx := lastIndexFold(content, delim)
		if idx < 0 {
			continue
		}
		name := content[idx+len(delim):]
		if p := strings.Index(name, parenDelimiter); p >= 0 {
			name = name[:p]
		}
		return name, name != ""
	}
	return "", false
}

// dishText matches content against the city keywords in order. The first
// keyword found decides; the dish is the content before " for ", if any.
func dishText(content string, keywords []string) (string, bool) {
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		if idx := indexFold(content, forDelimiter); idx >= 0 {
			return content[:idx], true
		}
		return content, true
	}
	return "", false
}
