package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultCharset is used to decode post files unless another is configured.
const DefaultCharset = "utf-8"

// Charset decodes raw post files into text.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// LookupCharset resolves a WHATWG encoding label such as "utf-8",
// "shift_jis" or "windows-1252".
func LookupCharset(label string) (Charset, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return Charset{}, fmt.Errorf("charset %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(strings.TrimSpace(label))
	}
	return Charset{name: name, enc: enc}, nil
}

// Name returns the canonical name of the charset.
func (c Charset) Name() string {
	return c.name
}

// Decode converts raw to a string. Bytes that are not valid in the charset
// yield ErrDecode; nothing is replaced silently.
func (c Charset) Decode(raw []byte) (string, error) {
	if c.enc == nil || c.name == DefaultCharset {
		if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrDecode, DefaultCharset, err)
		}
		return string(raw), nil
	}

	out, _, err := transform.Bytes(c.enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, c.name, err)
	}
	// x/text decoders substitute U+FFFD for invalid input.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("%w: %s: invalid byte sequence", ErrDecode, c.name)
	}
	return string(out), nil
}
