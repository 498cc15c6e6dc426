package markdown

import (
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// emphasisPriority is the priority goldmark gives its own emphasis parser.
const emphasisPriority = 500

// newParser returns goldmark's default parser with emphasis that never
// starts or ends inside a word, for `*` as well as `_`.
func newParser() parser.Parser {
	inlines := parser.DefaultInlineParsers()
	for i, v := range inlines {
		if v.Priority == emphasisPriority {
			inlines[i] = util.Prioritized(&emphasisParser{}, emphasisPriority)
		}
	}
	return parser.NewParser(
		parser.WithBlockParsers(parser.DefaultBlockParsers()...),
		parser.WithInlineParsers(inlines...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

type emphasisDelimiterProcessor struct{}

func (p *emphasisDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '*' || b == '_'
}

func (p *emphasisDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *emphasisDelimiterProcessor) OnMatch(consumes int) ast.Node {
	return ast.NewEmphasis(consumes)
}

var emphasisDelimiters = &emphasisDelimiterProcessor{}

// emphasisParser scans `*` and `_` runs like goldmark's, then disarms any run
// with a letter or digit on both sides so it renders literally.
type emphasisParser struct{}

func (s *emphasisParser) Trigger() []byte {
	return []byte{'*', '_'}
}

func (s *emphasisParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, emphasisDelimiters)
	if node == nil {
		return nil
	}
	after := ' '
	if node.OriginalLength < len(line) {
		after = util.ToRune(line, node.OriginalLength)
	}
	if isWordRune(before) && isWordRune(after) {
		node.CanOpen = false
		node.CanClose = false
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
