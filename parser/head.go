package parser

import "strings"

// ParseHead extracts the title and the optional title picture from a head
// block. Blank and whitespace-only lines are ignored; the remaining lines
// are returned as written.
func ParseHead(head string) (title, titlePic string, err error) {
	var lines []string
	for _, line := range splitLines(head) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	switch len(lines) {
	case 0:
		return "", "", ErrPostTitleNotFound
	case 1:
		return lines[0], "", nil
	case 2:
		return lines[0], lines[1], nil
	default:
		return "", "", ErrPostHeadSyntax
	}
}
