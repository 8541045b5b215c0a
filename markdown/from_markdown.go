package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/richtext"
	"github.com/cozy/blockedit/schema/basic"
	"github.com/cozy/blockedit/schema/list"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseOption configures ParseMarkdown.
type ParseOption func(*parser)

// WithIDGenerator sets the function generating the ids of the blocks.
func WithIDGenerator(fn func() string) ParseOption {
	return func(p *parser) { p.newID = fn }
}

// WithMarkdown sets the goldmark instance used to parse the source. The
// default one has the GitHub extensions.
func WithMarkdown(m goldmark.Markdown) ParseOption {
	return func(p *parser) { p.md = m }
}

type parser struct {
	md     goldmark.Markdown
	newID  func() string
	src    []byte
	blocks []*model.Block
}

// ParseMarkdown converts a markdown text to a document. Headings deeper
// than the supported levels become level 3 headings, task lists become
// to-dos, the other list items become text blocks starting with a bullet
// (or their number), and the other blocks become text blocks.
func ParseMarkdown(src []byte, opts ...ParseOption) (*model.Document, error) {
	p := &parser{
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		newID: model.NewBlockID,
		src:   src,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.blocksOf(p.md.Parser().Parse(text.NewReader(src)), 0)
	doc, err := model.NewDocument(p.blocks...)
	if err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	return doc, nil
}

func (p *parser) add(b *model.Block) {
	if b.Type == model.TypeTodo {
		var prev *model.Block
		if n := len(p.blocks); n > 0 {
			prev = p.blocks[n-1]
		}
		if max := list.MaxIndentation(prev); b.Indentation > max {
			b.Indentation = max
		}
	}
	p.blocks = append(p.blocks, b)
}

func (p *parser) blocksOf(parent ast.Node, depth int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		p.block(n, depth)
	}
}

func (p *parser) block(n ast.Node, depth int) {
	switch n := n.(type) {
	case *ast.Heading:
		level := n.Level
		if level > model.MaxHeadingLevel {
			level = model.MaxHeadingLevel
		}
		p.add(model.NewHeading(p.newID(), level, p.inline(n)))
	case *ast.Paragraph, *ast.TextBlock:
		p.add(model.NewBlock(p.newID(), model.TypeText, p.inline(n)))
	case *ast.List:
		p.list(n, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		p.add(model.NewBlock(p.newID(), model.TypeText, p.code(n)))
	case *extast.Table:
		p.table(n)
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		p.blocksOf(n, depth)
	}
}

func (p *parser) list(l *ast.List, depth int) {
	i := 0
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		first := item.FirstChild()
		if first == nil {
			continue
		}
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			p.add(model.NewTodo(p.newID(), p.inline(first), box.IsChecked, depth))
		} else {
			marker := basic.Bullet
			if l.IsOrdered() {
				marker = strconv.Itoa(l.Start+i) + "."
			}
			content := p.inline(first)
			if content != "" {
				content = " " + content
			}
			p.add(model.NewBlock(p.newID(), model.TypeText, marker+content))
		}
		i++
		for c := first.NextSibling(); c != nil; c = c.NextSibling() {
			p.block(c, depth+1)
		}
	}
}

func (p *parser) code(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(p.src))
	}
	code := basic.Mark(basic.Code).NewElement()
	code.AppendChild(richtext.NewText(strings.TrimRight(sb.String(), "\n")))
	root := richtext.NewRoot()
	root.AppendChild(code)
	return richtext.Render(root)
}

func (p *parser) table(t *extast.Table) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, p.inline(cell))
		}
		p.add(model.NewBlock(p.newID(), model.TypeText, strings.Join(cells, " | ")))
	}
}

// inline converts the inline children of n to the markup of a block.
func (p *parser) inline(n ast.Node) string {
	root := richtext.NewRoot()
	p.inlineInto(root, n)
	richtext.Normalize(root)
	return strings.TrimSpace(richtext.Render(root))
}

var rawTagRegexp = regexp.MustCompile(`^<(/?)([a-zA-Z]+)\s*>$`)

func (p *parser) inlineInto(target *html.Node, parent ast.Node) {
	// Raw tags like <u> open an element that the matching closing tag ends.
	stack := []*html.Node{target}
	top := func() *html.Node { return stack[len(stack)-1] }
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			value := unescape(n.Segment.Value(p.src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				value += " "
			}
			top().AppendChild(richtext.NewText(value))
		case *ast.String:
			top().AppendChild(richtext.NewText(string(n.Value)))
		case *ast.CodeSpan:
			code := basic.Mark(basic.Code).NewElement()
			code.AppendChild(richtext.NewText(p.plain(n, false)))
			top().AppendChild(code)
		case *ast.Emphasis:
			cmd := basic.Italic
			if n.Level >= 2 {
				cmd = basic.Bold
			}
			elem := basic.Mark(cmd).NewElement()
			p.inlineInto(elem, n)
			top().AppendChild(elem)
		case *extast.Strikethrough:
			elem := basic.Mark(basic.StrikeThrough).NewElement()
			p.inlineInto(elem, n)
			top().AppendChild(elem)
		case *ast.Link:
			link := richtext.NewLink(string(n.Destination))
			p.inlineInto(link, n)
			top().AppendChild(link)
		case *ast.AutoLink:
			url := string(n.URL(p.src))
			link := richtext.NewLink(url)
			link.AppendChild(richtext.NewText(string(n.Label(p.src))))
			top().AppendChild(link)
		case *ast.Image:
			top().AppendChild(richtext.NewText(p.plain(n, true)))
		case *ast.RawHTML:
			var raw strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				raw.Write(seg.Value(p.src))
			}
			m := rawTagRegexp.FindStringSubmatch(raw.String())
			if m == nil {
				continue
			}
			a := atom.Lookup([]byte(strings.ToLower(m[2])))
			mark := basic.MarkOf(richtext.NewElement(a))
			if mark == nil || mark.Command == basic.Link {
				continue
			}
			if m[1] == "" {
				elem := mark.NewElement()
				top().AppendChild(elem)
				stack = append(stack, elem)
			} else if len(stack) > 1 && mark.Matches(top()) {
				stack = stack[:len(stack)-1]
			}
		case *extast.TaskCheckBox:
		default:
			p.inlineInto(top(), n)
		}
	}
}

// unescape resolves the backslash escapes and the character references of
// a text.
func unescape(b []byte) string {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return string(util.ResolveEntityNames(b))
}

// plain returns the text of the inline children of n. The text of code
// spans is not unescaped.
func (p *parser) plain(n ast.Node, unescaped bool) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			value := c.Segment.Value(p.src)
			if unescaped {
				sb.WriteString(unescape(value))
			} else {
				sb.Write(value)
			}
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
