package tui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/cozy/blockedit/editor"
	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/richtext"
	"github.com/cozy/blockedit/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doc  = builder.Doc
	p    = builder.P
	todo = builder.Todo
)

func press(m *Model, msgs ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func live(m *Model, id string) string {
	return richtext.Render(m.Root(id))
}

func TestTyping(t *testing.T) {
	m := New(doc(p("ab"), p("c")), Options{})
	assert.Equal(t, "1", m.focus)
	assert.Equal(t, 0, m.caret)

	// inserts at the caret in the live tree
	typeText(m, "xy")
	assert.Equal(t, "xyab", live(m, "1"))
	assert.Equal(t, "ab", m.Editor().Doc().Block(0).Content)
	assert.Equal(t, 2, m.caret)

	// deletes backward
	press(m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "xab", live(m, "1"))

	// commits the block when the focus leaves it
	press(m, down)
	assert.Equal(t, "2", m.focus)
	assert.Equal(t, "xab", m.Editor().Doc().Block(0).Content)
	assert.Equal(t, 1, m.caret)
}

func TestEnterAddsBlock(t *testing.T) {
	m := New(doc(p("a")), Options{})
	press(m, tea.KeyPressMsg{Code: tea.KeyEnd})
	typeText(m, "b")

	cmd := press(m, enter)
	require.NotNil(t, cmd)
	require.Equal(t, 2, m.Editor().Doc().Len())
	assert.Equal(t, "1", m.focus)

	// the focus moves once the view has been rendered
	m.Update(afterRenderMsg{})
	next := m.Editor().Doc().Block(1)
	assert.Equal(t, next.ID, m.focus)
	assert.Equal(t, "ab", m.Editor().Doc().Block(0).Content)
	assert.Empty(t, m.Editor().PendingFocus())
}

func TestShortcuts(t *testing.T) {
	m := New(doc(p("")), Options{})

	typeText(m, "##")
	press(m, space)
	assert.Equal(t, `doc(h2(""))`, m.Editor().Doc().String())
	assert.Equal(t, 0, m.caret)

	// a dash starts a bullet
	m = New(doc(p("")), Options{})
	typeText(m, "-")
	press(m, space)
	assert.Equal(t, editor.Bullet, live(m, "1"))
	typeText(m, "item")
	assert.Equal(t, editor.Bullet+"item", live(m, "1"))

	// other spaces are typed
	press(m, space)
	assert.Equal(t, editor.Bullet+"item ", live(m, "1"))
}

func TestFormatting(t *testing.T) {
	m := New(doc(p("hello")), Options{})
	press(m, tea.KeyPressMsg{Code: tea.KeyEnd})
	press(m,
		tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift},
		tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift},
	)
	start, end := m.selected()
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)
	assert.True(t, m.Editor().Toolbar().Visible)
	assert.Equal(t, headerLines-1, m.Editor().Toolbar().Top)

	press(m, ctrl('b'))
	assert.Equal(t, "hel<b>lo</b>", live(m, "1"))
	assert.True(t, m.Editor().Toolbar().States.Bold)
	start, end = m.selected()
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)

	// a move collapses the selection and hides the toolbar
	press(m, tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 3, m.caret)
	assert.False(t, m.Editor().Toolbar().Visible)
}

func TestTypeMenu(t *testing.T) {
	m := New(doc(p("a"), p("b")), Options{})

	press(m, ctrl('t'))
	assert.Equal(t, editor.Menus{BlockType: "1"}, m.Editor().Menus())
	assert.Equal(t, 0, m.menuCursor)

	press(m, down, enter)
	assert.Equal(t, `doc(h1("a"), text("b"))`, m.Editor().Doc().String())
	assert.Equal(t, editor.Menus{}, m.Editor().Menus())

	// opens on the current type
	press(m, ctrl('t'))
	assert.Equal(t, 1, m.menuCursor)

	// esc closes the menu without quitting
	press(m, esc)
	assert.Equal(t, editor.Menus{}, m.Editor().Menus())
	assert.False(t, m.quitting)
}

func TestActionsMenu(t *testing.T) {
	m := New(doc(p("a"), p("b")), Options{})

	press(m, ctrl('p'), enter)
	require.Equal(t, 3, m.Editor().Doc().Len())
	m.Update(afterRenderMsg{})
	assert.Equal(t, m.Editor().Doc().Block(1).ID, m.focus)

	press(m, ctrl('p'), down, enter)
	assert.Equal(t, `doc(text("a"), text("b"))`, m.Editor().Doc().String())
	assert.Equal(t, "1", m.focus)
}

func TestTodos(t *testing.T) {
	m := New(doc(todo("a"), todo("b", builder.Indent(1))), Options{})

	press(m, ctrl('x'))
	assert.True(t, m.Editor().Doc().Block(0).Completed)

	press(m, down, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, 0, m.Editor().Doc().Block(1).Indentation)
	press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, 1, m.Editor().Doc().Block(1).Indentation)
}

func TestMoveAndDelete(t *testing.T) {
	m := New(doc(p("a"), p("b"), p("c")), Options{})

	press(m, tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModAlt})
	assert.Equal(t, `doc(text("b"), text("a"), text("c"))`, m.Editor().Doc().String())

	// cannot move past the edges
	press(m, tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModAlt})
	press(m, tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModAlt})
	assert.Equal(t, `doc(text("a"), text("b"), text("c"))`, m.Editor().Doc().String())

	// focuses the next block when the first one is deleted
	press(m, ctrl('d'))
	assert.Equal(t, `doc(text("b"), text("c"))`, m.Editor().Doc().String())
	assert.Equal(t, "2", m.focus)

	// and the previous one otherwise
	press(m, down, ctrl('d'))
	assert.Equal(t, `doc(text("b"))`, m.Editor().Doc().String())
	assert.Equal(t, "2", m.focus)
}

func TestUndo(t *testing.T) {
	m := New(doc(todo("a")), Options{Save: func(*model.Document) error { return nil }})
	press(m, ctrl('x'))
	assert.True(t, m.Editor().Doc().Block(0).Completed)

	press(m, ctrl('z'))
	assert.False(t, m.Editor().Doc().Block(0).Completed)
	press(m, ctrl('y'))
	assert.True(t, m.Editor().Doc().Block(0).Completed)

	// remounts the blocks whose content is restored
	press(m, tea.KeyPressMsg{Code: tea.KeyEnd})
	typeText(m, "b")
	press(m, ctrl('w'))
	press(m, ctrl('z'))
	assert.Equal(t, "a", m.Editor().Doc().Block(0).Content)
	assert.Equal(t, "a", live(m, "1"))
	assert.Equal(t, 1, m.caret)
}

func TestLinkPrompt(t *testing.T) {
	var opened []string
	m := New(doc(p("see docs")), Options{
		OpenURL: func(url string) error {
			opened = append(opened, url)
			return nil
		},
	})

	// needs a selection
	press(m, ctrl('k'))
	assert.Nil(t, m.prompt)

	press(m, tea.KeyPressMsg{Code: tea.KeyEnd})
	for range 4 {
		press(m, tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift})
	}
	press(m, ctrl('k'))
	require.NotNil(t, m.prompt)
	assert.Equal(t, "https://", m.prompt.input.Value())
	assert.Contains(t, m.render(), "Enter the URL:")

	m.prompt.input.SetValue("https://cozy.io")
	press(m, enter)
	assert.Nil(t, m.prompt)
	assert.True(t, strings.HasPrefix(live(m, "1"), `see <a href="https://cozy.io"`))

	// opens the link under the caret
	press(m, tea.KeyPressMsg{Code: tea.KeyRight}, ctrl('o'))
	assert.Equal(t, []string{"https://cozy.io"}, opened)
}

func TestCancelledPrompt(t *testing.T) {
	m := New(doc(p("text")), Options{})
	press(m, tea.KeyPressMsg{Code: tea.KeyEnd}, tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift})
	press(m, ctrl('k'))
	require.NotNil(t, m.prompt)

	press(m, esc)
	assert.Nil(t, m.prompt)
	assert.False(t, m.quitting)
	assert.Equal(t, "text", live(m, "1"))
}

func TestSave(t *testing.T) {
	var saved []*model.Document
	m := New(doc(p("a")), Options{
		Save: func(d *model.Document) error {
			saved = append(saved, d)
			return nil
		},
	})
	typeText(m, "b")
	press(m, ctrl('w'))
	require.Len(t, saved, 1)
	assert.Equal(t, "ba", saved[0].Block(0).Content)
	assert.Equal(t, "saved", m.status)

	// reports errors
	m.opts.Save = func(*model.Document) error { return errors.New("disk full") }
	press(m, ctrl('w'))
	assert.Equal(t, "cannot save: disk full", m.status)

	// is disabled without a save function
	m = New(doc(p("a")), Options{})
	press(m, ctrl('w'))
	assert.Equal(t, "saving is disabled", m.status)
}

func TestQuit(t *testing.T) {
	m := New(doc(p("a")), Options{})
	typeText(m, "b")
	cmd := press(m, ctrl('c'))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, "ba", m.Editor().Doc().Block(0).Content)
	assert.Equal(t, "", m.render())
}

func TestView(t *testing.T) {
	m := New(doc(builder.H1("title"), todo("milk", builder.Checked)), Options{})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, 60, m.width)

	view := m.render()
	assert.Contains(t, view, "blockedit")
	assert.Contains(t, view, "milk")
	assert.Contains(t, view, "[x]")

	press(m, ctrl('t'))
	assert.Contains(t, m.render(), "To-do list")
}
