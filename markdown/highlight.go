package markdown

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlighter writes syntax-highlighted HTML for a single language.
type Highlighter interface {
	Highlight(w io.Writer, code string) error
}

// Lexicon maps fenced code block languages to highlighters. Lookup reports
// false when the language is not supported.
type Lexicon interface {
	Lookup(lang string) (Highlighter, bool)
}

// ChromaLexicon resolves languages through chroma's lexer registry and
// formats tokens as HTML with CSS classes.
type ChromaLexicon struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaLexicon builds a lexicon using the named chroma style. Unknown
// style names fall back to chroma's default style.
func NewChromaLexicon(style string) *ChromaLexicon {
	if style == "" {
		style = DefaultStyle
	}
	return &ChromaLexicon{
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(4)),
		style:     styles.Get(style),
	}
}

// Lookup returns the highlighter for lang, or false if chroma has no lexer for it.
func (l *ChromaLexicon) Lookup(lang string) (Highlighter, bool) {
	if lang == "" {
		return nil, false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, false
	}
	return &chromaHighlighter{
		lexer:     chroma.Coalesce(lexer),
		formatter: l.formatter,
		style:     l.style,
	}, true
}

// WriteCSS writes the stylesheet matching the classes emitted by Lookup's highlighters.
func (l *ChromaLexicon) WriteCSS(w io.Writer) error {
	return l.formatter.WriteCSS(w, l.style)
}

type chromaHighlighter struct {
	lexer     chroma.Lexer
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func (h *chromaHighlighter) Highlight(w io.Writer, code string) error {
	tokens, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return h.formatter.Format(w, h.style, tokens)
}
