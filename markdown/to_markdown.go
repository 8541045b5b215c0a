package markdown

import (
	"regexp"
	"strings"
	"unicode"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/schema/basic"
)

// BlockSerializerFunc is the function to serialize a block.
type BlockSerializerFunc func(state *SerializerState, block *model.Block, index int)

// Serializer is a specification for serializing a block document as
// Markdown/CommonMark text.
type Serializer struct {
	Blocks    map[model.BlockType]BlockSerializerFunc
	converter *md.Converter
}

// NewSerializer constructs a serializer with the given configuration. The
// `blocks` map should associate each block type to a function that takes a
// serializer state and such a block, and serializes the block.
//
// The inline markup of the blocks is converted by html-to-markdown, with
// the GitHub strikethrough syntax. Underlines have no markdown equivalent
// and are kept as raw HTML.
func NewSerializer(blocks map[model.BlockType]BlockSerializerFunc) *Serializer {
	conv := md.NewConverter("", true, &md.Options{
		EmDelimiter:     "*",
		StrongDelimiter: "**",
	})
	conv.Use(plugin.Strikethrough("~~"))
	conv.AddRules(md.Rule{
		Filter: []string{"u"},
		Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
			if strings.TrimSpace(content) == "" {
				return md.String(content)
			}
			return md.String("<u>" + content + "</u>")
		},
	})
	return &Serializer{Blocks: blocks, converter: conv}
}

// Serialize the blocks of the document to
// [CommonMark](http://commonmark.org/).
func (s *Serializer) Serialize(doc *model.Document) string {
	state := NewSerializerState(s.Blocks, s.converter)
	state.RenderContent(doc)
	state.EnsureNewLine()
	return state.Out
}

// bulletContent returns the content of a text block without its leading
// bullet, and false when the block does not start with a bullet.
func bulletContent(content string) (string, bool) {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, basic.Bullet) {
		return content, false
	}
	return strings.TrimLeftFunc(strings.TrimPrefix(trimmed, basic.Bullet), unicode.IsSpace), true
}

// DefaultSerializer is a serializer for the three block types.
var DefaultSerializer = NewSerializer(map[model.BlockType]BlockSerializerFunc{
	model.TypeHeading: func(state *SerializerState, block *model.Block, _index int) {
		state.Write(strings.Repeat("#", block.HeadingLevel) + " ")
		state.RenderInline(block.Content)
		state.CloseBlock(block)
	},
	model.TypeText: func(state *SerializerState, block *model.Block, _index int) {
		if content, ok := bulletContent(block.Content); ok {
			state.tightItem(func(prev *model.Block) bool {
				_, bullet := bulletContent(prev.Content)
				return prev.Type == model.TypeText && bullet
			})
			state.Write("- ")
			state.RenderInline(content)
			state.CloseBlock(block)
			return
		}
		state.RenderInline(block.Content)
		state.CloseBlock(block)
	},
	model.TypeTodo: func(state *SerializerState, block *model.Block, _index int) {
		state.tightItem(func(prev *model.Block) bool {
			return prev.Type == model.TypeTodo
		})
		box := "- [ ] "
		if block.Completed {
			box = "- [x] "
		}
		state.Write(strings.Repeat("  ", block.Indentation) + box)
		state.RenderInline(block.Content)
		state.CloseBlock(block)
	},
})

// SerializerState is an object used to track state and expose methods related
// to markdown serialization. Instances are passed to block serialization
// functions.
type SerializerState struct {
	Blocks       map[model.BlockType]BlockSerializerFunc
	Delim        string
	Out          string
	Closed       *model.Block
	AtBlockStart bool
	converter    *md.Converter
}

// NewSerializerState is the constructor for SerializerState.
func NewSerializerState(blocks map[model.BlockType]BlockSerializerFunc, converter *md.Converter) *SerializerState {
	return &SerializerState{
		Blocks:    blocks,
		converter: converter,
	}
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// tightItem closes the previous block without a blank line when it is an
// item of the same list.
func (s *SerializerState) tightItem(sameList func(prev *model.Block) bool) {
	if s.Closed != nil && sameList(s.Closed) {
		s.flushClose(1)
	}
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine ensures the current content ends with a newline.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write prepares the state for writing output (closing closed blocks,
// adding delimiters, and so on), and then optionally add content
// (unescaped) to the output.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock closes the given block.
func (s *SerializerState) CloseBlock(block *model.Block) {
	s.Closed = block
}

// Text adds the given text to the document. When escape is not `false`, it
// will be escaped.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart)
		} else {
			s.Out += line
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
}

// Render the given block.
func (s *SerializerState) Render(block *model.Block, index int) {
	if fn, ok := s.Blocks[block.Type]; ok {
		fn(s, block, index)
	}
}

// RenderContent renders the blocks of the document.
func (s *SerializerState) RenderContent(doc *model.Document) {
	doc.ForEach(func(block *model.Block, i int) {
		s.Render(block, i)
	})
}

var newlinesRegexp = regexp.MustCompile(`\s*\n\s*`)

// RenderInline renders the inline markup of a block. When the markup cannot
// be converted, its text is written escaped.
func (s *SerializerState) RenderInline(content string) {
	s.AtBlockStart = true
	out, err := s.converter.ConvertString(content)
	if err != nil {
		s.Text(model.NewBlock("", model.TypeText, content).Text())
	} else {
		s.Text(newlinesRegexp.ReplaceAllString(out, " "), false)
	}
	s.AtBlockStart = false
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`^(\s*\d+)\.`)
)

// Esc escapes the given string so that it can safely appear in Markdown
// content. If `startOfLine` is true, also escape characters that have special
// meaning only at the start of the line.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}
