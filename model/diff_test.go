package model_test

import (
	"testing"

	. "github.com/cozy/blockedit/model"
	"github.com/stretchr/testify/assert"
)

func TestFindDiffStart(t *testing.T) {
	start := func(a, b *Document, expected int) {
		found := FindDiffStart(a, b)
		if expected < 0 {
			assert.Nil(t, found)
			return
		}
		if assert.NotNil(t, found) {
			assert.Equal(t, expected, *found)
		}
	}

	// returns nil for identical documents
	start(doc(p("a"), h1("b"), todo("c")), doc(p("a"), h1("b"), todo("c")), -1)

	// notices when one document is longer
	start(doc(p("a"), h1("b")), doc(p("a"), h1("b"), p("oops")), 2)

	// notices when one document is shorter
	start(doc(p("a"), h1("b"), p("oops")), doc(p("a"), h1("b")), 2)

	// notices differing content
	start(doc(p("a"), p("b")), doc(p("a"), p("<b>b</b>")), 1)

	// notices a different block type
	start(doc(p("a"), p("b")), doc(p("a"), h1("b")), 1)

	// notices a completed to-do
	start(doc(todo("a")), doc(todo("a", checked)), 0)

	// notices a different indentation
	start(doc(p("x"), todo("a")), doc(p("x"), todo("a", indent(1))), 1)
}

func TestFindDiffEnd(t *testing.T) {
	end := func(a, b *Document, expected *DiffEnd) {
		assert.Equal(t, expected, FindDiffEnd(a, b))
	}

	// returns nil for identical documents
	end(doc(p("a"), h1("b")), doc(p("a"), h1("b")), nil)

	// notices an inserted block
	end(doc(p("a"), p("c")), doc(p("a"), p("b", id("x")), p("c", id("2"))), &DiffEnd{A: 1, B: 2})

	// notices a removed block at the start
	end(doc(p("x"), p("a", id("a"))), doc(p("a", id("a"))), &DiffEnd{A: 1, B: 0})

	// notices a change at the end
	end(doc(p("a"), p("b")), doc(p("a"), p("c")), &DiffEnd{A: 2, B: 2})
}
