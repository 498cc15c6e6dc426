// Package markdown renders post bodies from Markdown to HTML, with fenced
// code blocks highlighted by chroma.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// codeBlockPriority places the code block renderer ahead of goldmark's
// default HTML renderer (priority 1000).
const codeBlockPriority = 200

// Renderer converts Markdown to HTML. Its configuration is fixed at
// construction, so a single Renderer can be shared between goroutines.
type Renderer struct {
	md goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	lexicon Lexicon
}

// WithLexicon sets the language lookup used for fenced code blocks.
func WithLexicon(l Lexicon) Option {
	return func(o *rendererOptions) {
		o.lexicon = l
	}
}

// New builds a Renderer with fenced code blocks, autolinking, smart
// punctuation and no intra-word emphasis.
func New(opts ...Option) *Renderer {
	o := rendererOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lexicon == nil {
		o.lexicon = NewChromaLexicon(DefaultStyle)
	}

	code := &CodeBlockRenderer{Lexicon: o.lexicon}
	md := goldmark.New(
		goldmark.WithParser(newParser()),
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(code, codeBlockPriority)),
		),
	)
	return &Renderer{md: md}
}

// Render returns the HTML for md. Malformed or truncated Markdown is
// rendered however goldmark recovers from it.
func (r *Renderer) Render(md string) string {
	var buf bytes.Buffer
	// Convert only fails when the writer does; bytes.Buffer never does.
	_ = r.md.Convert([]byte(md), &buf)
	return buf.String()
}

// Component returns a templ.Component that renders md as HTML.
func (r *Renderer) Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, r.Render(md))
		return err
	})
}
