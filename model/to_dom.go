package model

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToDOM builds the DOM for a block. It returns the outermost element and the
// editable element where the inline content of the block goes.
type ToDOM = func(*Block) (top, content *html.Node)

// contentContext is the element used as parsing context for inline markup.
func contentContext() *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func editable(b *Block, a atom.Atom, attrs ...html.Attribute) *html.Node {
	attrs = append(attrs,
		html.Attribute{Key: "contenteditable", Val: "true"},
		html.Attribute{Key: "data-block-id", Val: b.ID},
	)
	return element(a, attrs...)
}

func defaultTextDOMGenerator() ToDOM {
	return func(b *Block) (*html.Node, *html.Node) {
		p := editable(b, atom.P)
		return p, p
	}
}

func defaultHeadingDOMGenerator() ToDOM {
	return func(b *Block) (*html.Node, *html.Node) {
		level := b.HeadingLevel
		if level < 1 {
			level = 1
		}
		div := editable(b, atom.Div, html.Attribute{Key: "class", Val: "heading-" + strconv.Itoa(level)})
		return div, div
	}
}

func defaultTodoDOMGenerator() ToDOM {
	return func(b *Block) (*html.Node, *html.Node) {
		indentation := strconv.Itoa(b.Indentation)
		div := element(atom.Div,
			html.Attribute{Key: "class", Val: "todo-block"},
			html.Attribute{Key: "data-indentation", Val: indentation},
			html.Attribute{Key: "style", Val: "--indentation-level: " + indentation},
		)
		checkbox := element(atom.Input, html.Attribute{Key: "type", Val: "checkbox"})
		if b.Completed {
			checkbox.Attr = append(checkbox.Attr, html.Attribute{Key: "checked", Val: ""})
		}
		div.AppendChild(checkbox)
		decoration := "none"
		if b.Completed {
			decoration = "line-through"
		}
		span := editable(b, atom.Span, html.Attribute{Key: "style", Val: "text-decoration: " + decoration})
		div.AppendChild(span)
		return div, span
	}
}

// Default ToDOM functions
var defaultToDOM = map[BlockType]ToDOM{
	TypeText:    defaultTextDOMGenerator(),
	TypeHeading: defaultHeadingDOMGenerator(),
	TypeTodo:    defaultTodoDOMGenerator(),
}

// A DOMSerializer knows how to convert blocks to DOM nodes. Each block is
// wrapped in a draggable "block" element, the way the editor lays them out.
type DOMSerializer struct {
	// The block serialization functions, by block type.
	Blocks map[BlockType]ToDOM
}

// NewDOMSerializer returns a serializer with the default ToDOM functions,
// overridden by the given ones.
func NewDOMSerializer(overrides map[BlockType]ToDOM) *DOMSerializer {
	blocks := make(map[BlockType]ToDOM, len(defaultToDOM))
	for k, v := range defaultToDOM {
		blocks[k] = v
	}
	for k, v := range overrides {
		blocks[k] = v
	}
	return &DOMSerializer{Blocks: blocks}
}

// SerializeDocument serializes the blocks of the document, appending them to
// target. A new "editor" element is created when target is nil.
func (d *DOMSerializer) SerializeDocument(doc *Document, target *html.Node) *html.Node {
	if target == nil {
		target = element(atom.Div, html.Attribute{Key: "class", Val: "editor"})
	}
	doc.ForEach(func(b *Block, _ int) {
		if child := d.SerializeBlock(b); child != nil {
			target.AppendChild(child)
		}
	})
	return target
}

// SerializeBlock serializes a single block to a DOM node. It returns nil when
// there is no ToDOM function for the block type.
func (d *DOMSerializer) SerializeBlock(b *Block) *html.Node {
	toDOM := d.Blocks[b.Type]
	if toDOM == nil {
		return nil
	}
	wrapper := element(atom.Div,
		html.Attribute{Key: "class", Val: "block"},
		html.Attribute{Key: "draggable", Val: "true"},
	)
	top, content := toDOM(b)
	for _, n := range ParseContent(b.Content) {
		content.AppendChild(n)
	}
	wrapper.AppendChild(top)
	return wrapper
}

// ParseContent parses the inline markup of a block into detached nodes.
// Markup that cannot be parsed is kept as text.
func ParseContent(content string) []*html.Node {
	if content == "" {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), contentContext())
	if err != nil {
		return []*html.Node{{Type: html.TextNode, Data: content}}
	}
	return nodes
}

// RenderHTML renders the document with the default serializer.
func RenderHTML(doc *Document) (string, error) {
	root := NewDOMSerializer(nil).SerializeDocument(doc, nil)
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}
