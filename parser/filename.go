package parser

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// NameLayout is the time layout a post file name must follow once its
// extension is removed.
const NameLayout = "2006-01-02-15-04"

// Filename is the metadata carried by a post file's name.
type Filename struct {
	Name     string
	Datetime time.Time
	Filepath string
}

// ParseFilename derives the canonical name and creation time from path.
// As many characters as the extension has are dropped from the end of the
// base name without checking that they actually spell it.
func (p *Parser) ParseFilename(path string) (Filename, error) {
	base := filepath.Base(path)
	name, ok := trimRunes(base, utf8.RuneCountInString(p.ext))
	if !ok {
		return Filename{}, fmt.Errorf("%w: %q", ErrPostNameInvalid, base)
	}

	if len(name) != len(NameLayout) {
		return Filename{}, fmt.Errorf("%w: %q", ErrPostNameInvalid, name)
	}
	dt, err := time.ParseInLocation(NameLayout, name, p.loc)
	if err != nil {
		return Filename{}, fmt.Errorf("%w: %w", ErrPostNameInvalid, err)
	}
	return Filename{Name: name, Datetime: dt, Filepath: path}, nil
}

// Filename returns the file name a post created at t should have.
func (p *Parser) Filename(t time.Time) string {
	return t.In(p.loc).Format(NameLayout) + p.ext
}

// trimRunes drops the last n characters of s.
func trimRunes(s string, n int) (string, bool) {
	end := len(s)
	for ; n > 0; n-- {
		if end == 0 {
			return "", false
		}
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[:end], true
}
