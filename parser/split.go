package parser

import (
	"strings"
	"unicode/utf8"
)

// Separator divides the head block from the body block. A line containing
// it anywhere counts as the separator line.
const Separator = "---"

// Split returns the text before and after the first line containing
// Separator. The separator line itself is dropped.
func Split(source string) (head, body string, err error) {
	lines := splitLines(source)

	at, found := 0, false
	for i, line := range lines {
		if strings.Contains(line, Separator) {
			at, found = i, true
			break
		}
	}
	if !found {
		return "", "", ErrSeparatorNotFound
	}

	return strings.Join(lines[:at], "\n"), strings.Join(lines[at+1:], "\n"), nil
}

// splitLines breaks s on every line boundary (\n, \r\n, \r and the unicode
// separators). A trailing line break does not yield an empty last line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
