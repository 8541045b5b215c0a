package editor_test

import (
	"testing"

	. "github.com/cozy/blockedit/editor"
	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doc  = builder.Doc
	p    = builder.P
	h1   = builder.H1
	h2   = builder.H2
	h3   = builder.H3
	todo = builder.Todo
)

type (
	id     = builder.ID
	indent = builder.Indent
)

func dispatch(d *model.Document, key, blockID, live string) Result {
	return Dispatch(d, KeyEvent{Key: key, BlockID: blockID, LiveText: live, NewID: builder.Seq()})
}

func TestDispatchEnter(t *testing.T) {
	// inserts a text block after a text block, and focuses it
	res := dispatch(doc(p("a"), p("b")), KeyEnter, "1", "a")
	require.NotNil(t, res.Transform)
	assert.True(t, res.PreventDefault)
	assert.Equal(t, `doc(text("a"), text(""), text("b"))`, res.Transform.Doc().String())
	assert.Equal(t, &FocusRequest{BlockID: "n1"}, res.Focus)
	assert.Equal(t, 1, res.Transform.Doc().IndexOf("n1"))

	// inserts a text block after a heading
	res = dispatch(doc(h2("title")), KeyEnter, "1", "title")
	assert.Equal(t, `doc(h2("title"), text(""))`, res.Transform.Doc().String())

	// inherits the type and indentation of a to-do
	res = dispatch(doc(todo("a"), todo("b", indent(2))), KeyEnter, "2", "b")
	inserted := res.Transform.Doc().Block(2)
	assert.Equal(t, model.TypeTodo, inserted.Type)
	assert.Equal(t, 2, inserted.Indentation)
	assert.False(t, inserted.Completed)

	// inserts below an empty text block
	res = dispatch(doc(p("")), KeyEnter, "1", "  ")
	assert.Equal(t, 2, res.Transform.Doc().Len())

	// outdents an empty indented to-do
	res = dispatch(doc(todo("a"), todo("", indent(1))), KeyEnter, "2", " ")
	assert.Equal(t, `doc(todo("a"), todo(""))`, res.Transform.Doc().String())
	assert.Nil(t, res.Focus)

	// converts an empty to-do at the root to text
	res = dispatch(doc(todo("stale", builder.Checked)), KeyEnter, "1", "")
	assert.Equal(t, `doc(text(""))`, res.Transform.Doc().String())
	assert.True(t, res.PreventDefault)
}

func TestDispatchBackspace(t *testing.T) {
	// removes an empty block and focuses the previous one
	res := dispatch(doc(p("a"), h1("b"), p("")), KeyBackspace, "3", "")
	require.NotNil(t, res.Transform)
	assert.Equal(t, `doc(text("a"), h1("b"))`, res.Transform.Doc().String())
	assert.Equal(t, &FocusRequest{BlockID: "2"}, res.Focus)
	assert.True(t, res.PreventDefault)

	// uses the live text, not the content of the block
	res = dispatch(doc(p("a"), p("stale")), KeyBackspace, "2", " \t")
	assert.Equal(t, 1, res.Transform.Doc().Len())
	res = dispatch(doc(p("a"), p("")), KeyBackspace, "2", "x")
	assert.False(t, res.Handled())

	// does nothing on the first block, but prevents the default action
	res = dispatch(doc(p(""), p("b")), KeyBackspace, "1", "")
	assert.Nil(t, res.Transform)
	assert.Nil(t, res.Focus)
	assert.True(t, res.PreventDefault)
}

func TestDispatchTab(t *testing.T) {
	d := doc(p("a"), todo("b"), todo("c"), todo("d", indent(1)))

	// indents one level under the previous to-do
	res := dispatch(d, KeyTab, "3", "c")
	assert.Equal(t, 1, res.Transform.Doc().Block(2).Indentation)
	assert.True(t, res.PreventDefault)

	// does not indent deeper than allowed, but prevents the default action
	res = dispatch(d, KeyTab, "4", "d")
	assert.Nil(t, res.Transform)
	assert.True(t, res.PreventDefault)

	// does not indent after a text block
	res = dispatch(d, KeyTab, "2", "b")
	assert.Nil(t, res.Transform)

	// is not handled for other types
	res = dispatch(d, KeyTab, "1", "a")
	assert.False(t, res.Handled())
}

func TestDispatchShortcuts(t *testing.T) {
	shortcut := func(live string, expected string, text string) {
		res := dispatch(doc(p("old")), KeySpace, "1", live)
		require.NotNil(t, res.Transform, live)
		assert.Equal(t, expected, res.Transform.Doc().String(), live)
		assert.True(t, res.PreventDefault)
		if assert.NotNil(t, res.LiveText) {
			assert.Equal(t, text, *res.LiveText)
		}
	}

	// converts to headings
	shortcut("#", `doc(h1(""))`, "")
	shortcut("##", `doc(h2(""))`, "")
	shortcut("###", `doc(h3(""))`, "")

	// converts to a to-do
	shortcut("[]", `doc(todo(""))`, "")

	// converts to a text block with a bullet
	shortcut("-", `doc(text(""))`, Bullet)

	// ignores surrounding spaces
	shortcut(" ## ", `doc(h2(""))`, "")

	// resets the to-do fields
	res := dispatch(doc(todo("x", indent(1), builder.Checked)), KeySpace, "1", "#")
	assert.Equal(t, `doc(h1(""))`, res.Transform.Doc().String())

	// lets the space through otherwise
	for _, live := range []string{"", "####", "# title", "[ ]", "--"} {
		assert.False(t, dispatch(doc(p("x")), KeySpace, "1", live).Handled(), live)
	}
}

func TestDispatchUnknown(t *testing.T) {
	d := doc(p(""), p(""))

	// ignores unknown blocks
	for _, key := range []string{KeyEnter, KeyBackspace, KeyTab, KeySpace} {
		assert.False(t, dispatch(d, key, "x", "").Handled())
	}

	// ignores other keys
	assert.False(t, dispatch(d, "a", "2", "").Handled())
}

func TestDispatchTouchesFocusedBlock(t *testing.T) {
	d := doc(todo("a", indent(0)), todo("b"), todo("", indent(1)), p("z"))
	for _, key := range []string{KeyEnter, KeyBackspace, KeyTab, KeySpace} {
		res := dispatch(d, key, "3", "")
		if res.Transform == nil {
			continue
		}
		after := res.Transform.Doc()
		// the other blocks are kept as they are
		for _, other := range []string{"1", "4"} {
			before, _ := d.Find(other)
			now, _ := after.Find(other)
			assert.True(t, before.Eq(now), key)
		}
	}
}
