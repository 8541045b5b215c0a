// Package tui is the terminal host of the editor. It keeps the live rich
// text tree of every block, turns the key presses into editor events and
// renders the document with lipgloss.
package tui

import (
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/cozy/blockedit/editor"
	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/richtext"
	"github.com/cozy/blockedit/schema/basic"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// afterRenderMsg is delivered once the view has been rendered after a change
// that asked for the focus to move.
type afterRenderMsg struct{}

// Options configures the terminal editor.
type Options struct {
	Logger *zap.Logger
	// ToolbarOffset is the number of lines between the toolbar and the
	// selection. It is 1 when zero.
	ToolbarOffset int
	HistoryLimit  int
	// Save writes the document. Saving is disabled when nil.
	Save func(*model.Document) error
	// OpenURL opens the target of a link. The URL is shown in the status bar
	// when nil.
	OpenURL func(url string) error
}

// Model is the bubbletea model of the editor. It is the Surface of the
// editor: it owns the live trees of the blocks, the focus and the selection.
type Model struct {
	editor *editor.Editor
	logger *zap.Logger
	keys   keyMap
	opts   Options

	roots   map[string]*html.Node
	mounted map[string]string

	focus  string
	caret  int
	anchor int

	menuCursor int
	prompt     *prompt
	status     string
	width      int
	height     int
	quitting   bool
}

// New creates the terminal editor for a document.
func New(doc *model.Document, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := &Model{
		logger:  opts.Logger,
		keys:    defaultKeyMap(),
		opts:    opts,
		roots:   map[string]*html.Node{},
		mounted: map[string]string{},
		width:   80,
	}
	editorOpts := []editor.Option{
		editor.WithLogger(opts.Logger),
		editor.WithPrompter(m),
		editor.WithOpener(m),
		editor.WithToolbarOffset(1),
	}
	if opts.ToolbarOffset > 0 {
		editorOpts = append(editorOpts, editor.WithToolbarOffset(opts.ToolbarOffset))
	}
	if opts.HistoryLimit > 0 {
		editorOpts = append(editorOpts, editor.WithHistoryLimit(opts.HistoryLimit))
	}
	m.editor = editor.New(doc, m, editorOpts...)
	m.editor.Subscribe(m.mount)
	m.mount(m.editor.Doc())
	if doc.Len() > 0 {
		m.Focus(doc.Block(0).ID)
		m.caret, m.anchor = 0, 0
	}
	return m
}

// Editor returns the editor driven by the model.
func (m *Model) Editor() *editor.Editor {
	return m.editor
}

// mount creates the live trees of the new blocks, and of the blocks whose
// content has changed since they were mounted.
func (m *Model) mount(doc *model.Document) {
	seen := make(map[string]bool, doc.Len())
	doc.ForEach(func(b *model.Block, _ int) {
		seen[b.ID] = true
		if content, ok := m.mounted[b.ID]; ok && content == b.Content {
			return
		}
		root, err := richtext.Parse(b.Content)
		if err != nil {
			m.logger.Warn("invalid content", zap.String("block_id", b.ID), zap.Error(err))
			root = richtext.NewRoot()
			richtext.SetText(root, b.Text())
		}
		m.roots[b.ID] = root
		m.mounted[b.ID] = b.Content
		if b.ID == m.focus {
			m.clampCaret()
		}
	})
	for id := range m.roots {
		if !seen[id] {
			delete(m.roots, id)
			delete(m.mounted, id)
		}
	}
	if m.focus != "" && !seen[m.focus] {
		m.focus = ""
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case afterRenderMsg:
		m.editor.AfterRender()
		return m, nil
	}

	if m.prompt != nil {
		done, cmd := m.prompt.update(msg)
		if done {
			m.prompt = nil
		}
		return m, tea.Batch(cmd, m.afterRender())
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.afterRender())
	}
	return m, nil
}

// afterRender asks for AfterRender to be called once the new document has
// been rendered, when the focus has to move.
func (m *Model) afterRender() tea.Cmd {
	if len(m.editor.PendingFocus()) == 0 {
		return nil
	}
	return func() tea.Msg { return afterRenderMsg{} }
}

var editorKeys = map[string]string{
	"enter":     editor.KeyEnter,
	"backspace": editor.KeyBackspace,
	"tab":       editor.KeyTab,
	"space":     editor.KeySpace,
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	m.status = ""
	if menus := m.editor.Menus(); menus.BlockType != "" || menus.BlockActions != "" {
		if m.handleMenuKey(msg, menus) {
			return nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.blur()
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Save):
		m.save()
		return nil
	case key.Matches(msg, m.keys.Undo):
		m.editor.Undo()
		return nil
	case key.Matches(msg, m.keys.Redo):
		m.editor.Redo()
		return nil
	}

	if m.focus == "" {
		return nil
	}
	id := m.focus

	if k, ok := editorKeys[msg.String()]; ok {
		if m.editor.HandleKeyDown(k, id) {
			m.clampCaret()
			return nil
		}
		m.defaultAction(k)
		m.editor.SelectionChanged()
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Left):
		m.moveCaret(-1, false)
	case key.Matches(msg, m.keys.Right):
		m.moveCaret(1, false)
	case key.Matches(msg, m.keys.SelectLeft):
		m.moveCaret(-1, true)
	case key.Matches(msg, m.keys.SelectRight):
		m.moveCaret(1, true)
	case key.Matches(msg, m.keys.Home):
		m.caret, m.anchor = 0, 0
		m.editor.SelectionChanged()
	case key.Matches(msg, m.keys.End):
		m.caret = m.textLen()
		m.anchor = m.caret
		m.editor.SelectionChanged()

	case key.Matches(msg, m.keys.Bold):
		m.editor.ApplyFormatting(basic.Bold)
	case key.Matches(msg, m.keys.Italic):
		m.editor.ApplyFormatting(basic.Italic)
	case key.Matches(msg, m.keys.Underline):
		m.editor.ApplyFormatting(basic.Underline)
	case key.Matches(msg, m.keys.StrikeThrough):
		m.editor.ApplyFormatting(basic.StrikeThrough)
	case key.Matches(msg, m.keys.Code):
		m.editor.ApplyFormatting(basic.Code)
	case key.Matches(msg, m.keys.Link):
		m.editor.AddLink()
	case key.Matches(msg, m.keys.OpenLink):
		if link := m.linkAtCaret(); link != nil {
			m.editor.LinkClick(link)
		}
	case key.Matches(msg, m.keys.EditLink):
		if link := m.linkAtCaret(); link != nil {
			m.editor.LinkDoubleClick(link)
		}

	case key.Matches(msg, m.keys.ToggleTodo):
		m.editor.ToggleTodo(id)
	case key.Matches(msg, m.keys.Outdent):
		m.editor.Outdent(id)
	case key.Matches(msg, m.keys.AddBelow):
		m.blur()
		m.editor.AddBlockBelow(id)
	case key.Matches(msg, m.keys.Delete):
		m.deleteBlock(id)
	case key.Matches(msg, m.keys.TypeMenu):
		m.blur()
		m.menuCursor = m.currentChoice(id)
		m.editor.ToggleBlockTypeMenu(id)
	case key.Matches(msg, m.keys.ActionsMenu):
		m.menuCursor = 0
		m.editor.ToggleBlockActionsMenu(id)
	case key.Matches(msg, m.keys.MoveUp):
		m.drag(id, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.drag(id, 1)

	default:
		if text := typedText(msg); text != "" {
			m.insertText(text)
			m.editor.SelectionChanged()
		}
	}
	return nil
}

// typedText returns the text entered by a key press, or "" for the other
// keys.
func typedText(msg tea.KeyPressMsg) string {
	if msg.Text != "" {
		return msg.Text
	}
	if msg.Mod == 0 && unicode.IsPrint(msg.Code) {
		return string(msg.Code)
	}
	return ""
}

// defaultAction is what a key does when the editor has not prevented it.
func (m *Model) defaultAction(k string) {
	switch k {
	case editor.KeySpace:
		m.insertText(" ")
	case editor.KeyBackspace:
		m.deleteBackward()
	}
}

func (m *Model) blur() {
	if m.focus != "" {
		m.editor.Blur(m.focus)
	}
}

func (m *Model) moveFocus(delta int) {
	doc := m.editor.Doc()
	i := doc.IndexOf(m.focus) + delta
	if i < 0 || i >= doc.Len() {
		return
	}
	caret := m.caret
	m.blur()
	m.Focus(m.editor.Doc().Block(i).ID)
	m.caret = caret
	m.clampCaret()
	m.anchor = m.caret
	m.editor.SelectionChanged()
}

func (m *Model) deleteBlock(id string) {
	doc := m.editor.Doc()
	prev := doc.Previous(id)
	next := doc.IndexOf(id) + 1
	m.editor.DeleteBlock(id)
	switch {
	case prev != nil:
		m.Focus(prev.ID)
	case next < doc.Len():
		m.Focus(doc.Block(next).ID)
	}
}

func (m *Model) drag(id string, delta int) {
	doc := m.editor.Doc()
	i := doc.IndexOf(id) + delta
	if i < 0 || i >= doc.Len() {
		return
	}
	m.blur()
	m.editor.DragStart(id)
	if m.editor.DragOver() {
		m.editor.Drop(m.editor.Doc().Block(i).ID)
	}
}

func (m *Model) save() {
	if m.opts.Save == nil {
		m.status = "saving is disabled"
		return
	}
	m.blur()
	if err := m.opts.Save(m.editor.Doc()); err != nil {
		m.logger.Error("cannot save", zap.Error(err))
		m.status = "cannot save: " + err.Error()
		return
	}
	m.status = "saved"
}

// Menu entries of the block actions menu.
var actions = []string{"Add block below", "Delete block"}

func (m *Model) currentChoice(id string) int {
	b, _ := m.editor.Doc().Find(id)
	if b == nil {
		return 0
	}
	return max(basic.ChoiceOf(b), 0)
}

// handleMenuKey moves in the open menu. It returns false for the keys that
// the menu does not handle.
func (m *Model) handleMenuKey(msg tea.KeyPressMsg, menus editor.Menus) bool {
	size := len(actions)
	if menus.BlockType != "" {
		size = len(basic.Choices)
	}
	switch msg.String() {
	case "up":
		m.menuCursor = (m.menuCursor + size - 1) % size
	case "down":
		m.menuCursor = (m.menuCursor + 1) % size
	case "esc":
		m.editor.CloseMenus()
	case "enter":
		if menus.BlockType != "" {
			m.editor.SelectBlockType(menus.BlockType, basic.Choices[m.menuCursor])
			return true
		}
		id := menus.BlockActions
		switch m.menuCursor {
		case 0:
			m.editor.CloseMenus()
			m.editor.AddBlockBelow(id)
		case 1:
			m.deleteBlock(id)
		}
	default:
		return false
	}
	return true
}
