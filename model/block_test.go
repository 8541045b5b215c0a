package model_test

import (
	"testing"

	. "github.com/cozy/blockedit/model"
	"github.com/stretchr/testify/assert"
)

func TestBlockString(t *testing.T) {
	// shows the type and content
	assert.Equal(t, `text("hello")`, p("hello").String())

	// shows heading levels
	assert.Equal(t, `h2("title")`, h2("title").String())

	// shows indentation and completion of to-dos
	assert.Equal(t, `todo[1](x)("milk")`, todo("milk", indent(1), checked).String())
}

func TestBlockWithAttrs(t *testing.T) {
	base := todo("milk", id("a"), indent(2), checked)

	// keeps the to-do fields when the type does not change
	same := base.WithAttrs(Attrs{AttrContent: "bread"})
	assert.Equal(t, "bread", same.Content)
	assert.Equal(t, 2, same.Indentation)
	assert.True(t, same.Completed)

	// clears completion and indentation when leaving the to-do type
	text := base.WithAttrs(Attrs{AttrType: "text"})
	assert.Equal(t, TypeText, text.Type)
	assert.False(t, text.Completed)
	assert.Equal(t, 0, text.Indentation)
	assert.Equal(t, "a", text.ID)

	// defaults the heading level to 1
	heading := base.WithAttrs(Attrs{AttrType: TypeHeading})
	assert.Equal(t, 1, heading.HeadingLevel)
	assert.Equal(t, 0, heading.Indentation)

	// clamps the heading level
	assert.Equal(t, MaxHeadingLevel, heading.WithAttrs(Attrs{AttrHeadingLevel: 7}).HeadingLevel)

	// accepts numbers decoded from JSON
	assert.Equal(t, 3, base.WithAttrs(Attrs{AttrIndentation: float64(3)}).Indentation)

	// clears the heading level when leaving the heading type
	assert.Equal(t, 0, heading.WithAttrs(Attrs{AttrType: "todo"}).HeadingLevel)

	// never mutates the original block
	assert.Equal(t, TypeTodo, base.Type)
	assert.Equal(t, "milk", base.Content)
}

func TestBlockAttrs(t *testing.T) {
	// only carries the fields defined for the type
	assert.Equal(t, Attrs{AttrType: "text", AttrContent: "x"}, p("x").Attrs())
	assert.Equal(t, Attrs{AttrType: "heading", AttrContent: "x", AttrHeadingLevel: 2}, h2("x").Attrs())
	assert.Equal(t,
		Attrs{AttrType: "todo", AttrContent: "x", AttrCompleted: false, AttrIndentation: 1},
		todo("x", indent(1)).Attrs())
}

func TestBlockText(t *testing.T) {
	// strips inline markup
	assert.Equal(t, "bold and code", p("<b>bold</b> and <code>code</code>").Text())

	// decodes entities
	assert.Equal(t, "a < b", p("a &lt; b").Text())

	// returns plain content as is
	assert.Equal(t, "plain", p("plain").Text())
}

func TestNewBlockID(t *testing.T) {
	a, b := NewBlockID(), NewBlockID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNormalizeUnknownType(t *testing.T) {
	b := (&Block{ID: "x", Type: "quote", HeadingLevel: 2}).Normalized()
	assert.Equal(t, TypeText, b.Type)
	assert.Equal(t, 0, b.HeadingLevel)
}
