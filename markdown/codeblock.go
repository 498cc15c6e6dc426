package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// CodeBlockRenderer renders fenced code blocks. Blocks whose language the
// Lexicon recognizes are highlighted; everything else is HTML-escaped into
// a plain container.
type CodeBlockRenderer struct {
	Lexicon Lexicon
}

// Render returns the HTML for one code block. It never fails: an unknown
// language or a highlighter error falls back to escaped plain text.
func (r *CodeBlockRenderer) Render(text, lang string) string {
	code := strings.TrimSpace(text)
	if lang == "" || r.Lexicon == nil {
		return plainCodeBlock(code)
	}
	h, ok := r.Lexicon.Lookup(lang)
	if !ok {
		return plainCodeBlock(code)
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="highlight">`)
	if err := h.Highlight(&buf, code); err != nil {
		return plainCodeBlock(code)
	}
	buf.WriteString("</div>\n")
	return buf.String()
}

func plainCodeBlock(code string) string {
	var buf bytes.Buffer
	buf.WriteString(`<div class="highlight"><pre><code>`)
	buf.Write(util.EscapeHTML([]byte(code)))
	buf.WriteString("</code></pre></div>\n")
	return buf.String()
}

// RegisterFuncs hooks the renderer into goldmark for fenced code blocks.
func (r *CodeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *CodeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if _, err := w.WriteString(r.Render(code.String(), string(n.Language(source)))); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}
