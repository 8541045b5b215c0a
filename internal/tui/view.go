package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/cozy/blockedit/editor"
	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/schema/basic"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	accent     = lipgloss.Color("#7D56F4")
	muted      = lipgloss.Color("#777777")
	codeColor  = lipgloss.Color("#E06C75")
	linkColor  = lipgloss.Color("#61AFEF")
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	helpStyle  = lipgloss.NewStyle().Foreground(muted)
	menuStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	activeItem = lipgloss.NewStyle().Bold(true).Foreground(accent)
	focusMark  = lipgloss.NewStyle().Foreground(accent).Render("▌")
)

// headerLines is the number of lines above the first block.
const headerLines = 2

// View implements tea.Model.
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.quitting {
		return ""
	}
	var lines []string
	lines = append(lines, titleStyle.Render("blockedit"), "")

	toolbar := m.editor.Toolbar()
	menus := m.editor.Menus()
	m.editor.Doc().ForEach(func(b *model.Block, i int) {
		if toolbar.Visible && b.ID == m.focus {
			lines = append(lines, m.renderToolbar(toolbar))
		}
		lines = append(lines, m.renderBlock(b))
		switch b.ID {
		case menus.BlockType:
			lines = append(lines, m.renderMenu(typeLabels(), m.menuCursor))
		case menus.BlockActions:
			lines = append(lines, m.renderMenu(actions, m.menuCursor))
		}
	})

	lines = append(lines, "")
	if m.prompt != nil {
		lines = append(lines, m.prompt.render())
	} else {
		lines = append(lines, m.renderStatus())
	}
	return strings.Join(lines, "\n")
}

// blockLine returns the line of a block in the view, without toolbar and
// menus.
func (m *Model) blockLine(id string) int {
	return headerLines + m.editor.Doc().IndexOf(id)
}

// prefix returns what is shown before the content of a block.
func prefix(b *model.Block) string {
	switch b.Type {
	case model.TypeHeading:
		return strings.Repeat("#", b.HeadingLevel) + " "
	case model.TypeTodo:
		box := "[ ] "
		if b.Completed {
			box = "[x] "
		}
		return strings.Repeat("  ", b.Indentation) + box
	}
	return ""
}

// prefixWidth is the column where the content of a block starts.
func (m *Model) prefixWidth(id string) int {
	b, _ := m.editor.Doc().Find(id)
	if b == nil {
		return 0
	}
	return 2 + lipgloss.Width(prefix(b))
}

func (m *Model) renderBlock(b *model.Block) string {
	base := lipgloss.NewStyle()
	switch b.Type {
	case model.TypeHeading:
		base = base.Bold(true)
		if b.HeadingLevel == 1 {
			base = base.Underline(true)
		}
	case model.TypeTodo:
		if b.Completed {
			base = base.Faint(true)
		}
	}
	mark := "  "
	caret, start, end := -1, 0, 0
	if b.ID == m.focus {
		mark = focusMark + " "
		caret = m.caret
		start, end = m.selected()
	}
	r := &inlineRenderer{caret: caret, start: start, end: end}
	r.render(m.roots[b.ID], base)
	if r.pos == caret {
		r.sb.WriteString(base.Reverse(true).Render(" "))
	}
	return mark + helpStyle.Render(prefix(b)) + r.sb.String()
}

// inlineRenderer renders a live tree with terminal styles. The selection is
// shown in reverse video, and so is the caret.
type inlineRenderer struct {
	sb    strings.Builder
	pos   int
	caret int
	start int
	end   int
}

func markStyle(n *html.Node, style lipgloss.Style) lipgloss.Style {
	switch n.DataAtom {
	case atom.B, atom.Strong:
		return style.Bold(true)
	case atom.I, atom.Em:
		return style.Italic(true)
	case atom.U:
		return style.Underline(true)
	case atom.S, atom.Strike, atom.Del:
		return style.Strikethrough(true)
	case atom.Code:
		return style.Foreground(codeColor)
	case atom.A:
		return style.Underline(true).Foreground(linkColor)
	}
	return style
}

func (r *inlineRenderer) render(n *html.Node, style lipgloss.Style) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			r.text(c.Data, style)
		case html.ElementNode:
			r.render(c, markStyle(c, style))
		}
	}
}

func (r *inlineRenderer) highlighted(pos int) bool {
	if r.start != r.end {
		return pos >= r.start && pos < r.end
	}
	return pos == r.caret
}

func (r *inlineRenderer) text(s string, style lipgloss.Style) {
	var run []rune
	runHighlighted := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		st := style
		if runHighlighted {
			st = st.Reverse(true)
		}
		r.sb.WriteString(st.Render(string(run)))
		run = run[:0]
	}
	for _, c := range s {
		h := r.highlighted(r.pos)
		if h != runHighlighted {
			flush()
			runHighlighted = h
		}
		run = append(run, c)
		r.pos++
	}
	flush()
}

func (m *Model) renderToolbar(tb editor.Toolbar) string {
	var buttons []string
	for _, spec := range basic.Marks {
		label := " " + spec.Label + " "
		if tb.States.Active(spec.Command) {
			buttons = append(buttons, activeItem.Reverse(true).Render(label))
		} else {
			buttons = append(buttons, helpStyle.Render(label))
		}
	}
	return strings.Repeat(" ", max(tb.Left, 0)) + strings.Join(buttons, "")
}

func typeLabels() []string {
	labels := make([]string, len(basic.Choices))
	for i, choice := range basic.Choices {
		labels[i] = choice.Label
	}
	return labels
}

func (m *Model) renderMenu(items []string, cursor int) string {
	var lines []string
	for i, item := range items {
		if i == cursor {
			lines = append(lines, activeItem.Render("> "+item))
		} else {
			lines = append(lines, "  "+item)
		}
	}
	return menuStyle.MarginLeft(2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus() string {
	if m.status != "" {
		return helpStyle.Render(m.status)
	}
	var parts []string
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
