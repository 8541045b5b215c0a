package model_test

import (
	"bytes"
	"testing"

	. "github.com/cozy/blockedit/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func render(t *testing.T, n *html.Node) string {
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestSerializeBlock(t *testing.T) {
	serializer := NewDOMSerializer(nil)
	test := func(b *Block, expected string) {
		assert.Equal(t, expected, render(t, serializer.SerializeBlock(b)))
	}

	// renders a text block as a paragraph
	test(p("hello", id("a")),
		`<div class="block" draggable="true"><p contenteditable="true" data-block-id="a">hello</p></div>`)

	// keeps inline markup
	test(p("<b>bold</b> text", id("a")),
		`<div class="block" draggable="true"><p contenteditable="true" data-block-id="a"><b>bold</b> text</p></div>`)

	// renders a heading with its level as class
	test(h2("title", id("a")),
		`<div class="block" draggable="true"><div class="heading-2" contenteditable="true" data-block-id="a">title</div></div>`)

	// renders a to-do with a checkbox and its indentation
	test(todo("milk", id("a"), indent(2), checked),
		`<div class="block" draggable="true"><div class="todo-block" data-indentation="2" style="--indentation-level: 2">`+
			`<input type="checkbox" checked=""/>`+
			`<span style="text-decoration: line-through" contenteditable="true" data-block-id="a">milk</span></div></div>`)

	// leaves unchecked to-dos undecorated
	test(todo("milk", id("a")),
		`<div class="block" draggable="true"><div class="todo-block" data-indentation="0" style="--indentation-level: 0">`+
			`<input type="checkbox"/>`+
			`<span style="text-decoration: none" contenteditable="true" data-block-id="a">milk</span></div></div>`)
}

func TestSerializeDocument(t *testing.T) {
	out := NewDOMSerializer(nil).SerializeDocument(doc(p("a"), h1("b")), nil)
	// wraps the blocks in an editor element
	assert.Equal(t, "div", out.Data)
	count := 0
	for c := out.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestCustomToDOM(t *testing.T) {
	serializer := NewDOMSerializer(map[BlockType]ToDOM{
		TypeText: func(b *Block) (*html.Node, *html.Node) {
			n := &html.Node{Type: html.ElementNode, DataAtom: atom.H6, Data: "h6",
				Attr: []html.Attribute{{Key: "customAttr", Val: "attr_value"}}}
			return n, n
		},
	})

	// uses the overridden generator
	assert.Equal(t,
		`<div class="block" draggable="true"><h6 customAttr="attr_value">hi</h6></div>`,
		render(t, serializer.SerializeBlock(p("hi"))))

	// keeps the default ones for the other types
	assert.Contains(t, render(t, serializer.SerializeBlock(h1("x"))), `class="heading-1"`)
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(doc(p("a &amp; b")))
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="editor"><div class="block" draggable="true"><p contenteditable="true" data-block-id="1">a &amp; b</p></div></div>`,
		out)
}
