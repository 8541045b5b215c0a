package tui

import (
	"unicode/utf8"

	"github.com/cozy/blockedit/editor"
	"github.com/cozy/blockedit/richtext"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Root is a method of the editor.Surface interface.
func (m *Model) Root(id string) *html.Node {
	return m.roots[id]
}

// Focus is a method of the editor.Surface interface. The caret is put at the
// end of the block. The block that had the focus is blurred.
func (m *Model) Focus(id string) bool {
	root, ok := m.roots[id]
	if !ok {
		return false
	}
	if m.focus != "" && m.focus != id {
		m.editor.Blur(m.focus)
	}
	m.focus = id
	m.caret = utf8.RuneCountInString(richtext.TextContent(root))
	m.anchor = m.caret
	return true
}

// Selection is a method of the editor.Surface interface. The bounds are in
// cells: the line of the block and the column of the start of the
// selection.
func (m *Model) Selection() *editor.Selection {
	root := m.roots[m.focus]
	if root == nil {
		return nil
	}
	start, end := m.selected()
	return &editor.Selection{
		BlockID: m.focus,
		Range:   richtext.RangeFromOffsets(root, start, end),
		Bounds: editor.Rect{
			Top:    m.blockLine(m.focus),
			Left:   m.prefixWidth(m.focus) + start,
			Width:  end - start,
			Height: 1,
		},
	}
}

// Select is a method of the editor.Surface interface.
func (m *Model) Select(id string, r *richtext.Range) {
	root := m.roots[id]
	if root == nil || r == nil {
		return
	}
	m.focus = id
	m.anchor, m.caret = r.Offsets(root)
}

// Prompt is a method of the editor.Prompter interface. The answer comes
// later, when the user submits the prompt.
func (m *Model) Prompt(message, initial string, done func(string, bool)) {
	m.prompt = newPrompt(message, initial, m.width, done)
}

// Open is a method of the editor.Opener interface.
func (m *Model) Open(url string) {
	if m.opts.OpenURL == nil {
		m.status = "link: " + url
		return
	}
	if err := m.opts.OpenURL(url); err != nil {
		m.logger.Warn("cannot open link", zap.String("url", url), zap.Error(err))
		m.status = "cannot open " + url
	}
}

var (
	_ editor.Surface  = (*Model)(nil)
	_ editor.Prompter = (*Model)(nil)
	_ editor.Opener   = (*Model)(nil)
)

// selected returns the selection as ordered offsets in the focused block.
func (m *Model) selected() (start, end int) {
	if m.anchor <= m.caret {
		return m.anchor, m.caret
	}
	return m.caret, m.anchor
}

func (m *Model) textLen() int {
	return utf8.RuneCountInString(richtext.TextContent(m.roots[m.focus]))
}

func (m *Model) clampCaret() {
	l := m.textLen()
	m.caret = min(max(m.caret, 0), l)
	m.anchor = min(max(m.anchor, 0), l)
}

// moveCaret moves the caret by delta runes. The selection is extended when
// extend is true, and collapsed otherwise.
func (m *Model) moveCaret(delta int, extend bool) {
	if !extend && m.anchor != m.caret {
		start, end := m.selected()
		if delta < 0 {
			m.caret = start
		} else {
			m.caret = end
		}
	} else {
		m.caret += delta
	}
	m.clampCaret()
	if !extend {
		m.anchor = m.caret
	}
	m.editor.SelectionChanged()
}

// insertText replaces the selection by the text, in the live tree of the
// focused block. The text takes the styles of the place where it is
// inserted.
func (m *Model) insertText(text string) {
	root := m.roots[m.focus]
	if root == nil {
		return
	}
	start, end := m.selected()
	caret := richtext.DeleteContents(richtext.RangeFromOffsets(root, start, end))
	if caret.StartContainer.Type != html.TextNode {
		caret = richtext.RangeFromOffsets(root, start, start)
	}
	richtext.InsertNode(caret, richtext.NewText(text))
	richtext.Normalize(root)
	m.caret = start + utf8.RuneCountInString(text)
	m.anchor = m.caret
}

// deleteBackward removes the selection, or the character before the caret.
func (m *Model) deleteBackward() {
	root := m.roots[m.focus]
	if root == nil {
		return
	}
	start, end := m.selected()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	richtext.DeleteContents(richtext.RangeFromOffsets(root, start, end))
	richtext.Normalize(root)
	m.caret, m.anchor = start, start
}

// linkAtCaret returns the link enclosing the caret, if any.
func (m *Model) linkAtCaret() *html.Node {
	root := m.roots[m.focus]
	if root == nil {
		return nil
	}
	r := richtext.RangeFromOffsets(root, m.caret, m.caret)
	parent := richtext.SelectionParent(r)
	if !richtext.Is(parent, atom.A) || !richtext.Contains(root, parent) {
		return nil
	}
	return parent
}
