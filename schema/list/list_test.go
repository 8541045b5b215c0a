package list_test

import (
	"testing"

	. "github.com/cozy/blockedit/schema/list"
	"github.com/cozy/blockedit/test/builder"
	"github.com/stretchr/testify/assert"
)

var (
	doc    = builder.Doc
	p      = builder.P
	todo   = builder.Todo
	indent = func(n int) builder.Indent { return builder.Indent(n) }
)

func TestMaxIndentation(t *testing.T) {
	// allows no indentation for the first block
	assert.Equal(t, 0, MaxIndentation(nil))

	// allows no indentation after a text block
	assert.Equal(t, 0, MaxIndentation(p("x")))

	// allows one more level than the previous to-do
	assert.Equal(t, 1, MaxIndentation(todo("x")))
	assert.Equal(t, 3, MaxIndentation(todo("x", indent(2))))
}

func TestCanIndent(t *testing.T) {
	d := doc(p("a"), todo("b"), todo("c"), todo("d", indent(1)), todo("e", indent(2)))

	// not after a text block
	assert.False(t, CanIndent(d, "2"))

	// one level under the previous to-do
	assert.True(t, CanIndent(d, "3"))

	// not deeper than the previous to-do allows
	assert.False(t, CanIndent(d, "4"))
	assert.False(t, CanIndent(d, "5"))

	// only to-dos
	assert.False(t, CanIndent(d, "1"))
	assert.False(t, CanIndent(d, "nope"))
}

func TestCanOutdent(t *testing.T) {
	d := doc(todo("a"), todo("b", indent(1)))
	assert.False(t, CanOutdent(d, "1"))
	assert.True(t, CanOutdent(d, "2"))
}
