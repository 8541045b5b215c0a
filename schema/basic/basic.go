// Package basic defines the block types and the inline marks of the editor,
// with how they are represented in the DOM.
package basic

import (
	"github.com/cozy/blockedit/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Names of the formatting commands.
const (
	Bold          = "bold"
	Italic        = "italic"
	Underline     = "underline"
	StrikeThrough = "strikeThrough"
	Code          = "code"
	Link          = "link"
)

// Bullet marks the text blocks used as the items of a bulleted list.
const Bullet = "•"

// A BlockSpec describes how a type of block is shown.
type BlockSpec struct {
	Type model.BlockType
	// The element holding the editable content.
	Tag atom.Atom
	// The class of the element, if any. For headings, the level is appended.
	Class string
	// The name shown in the block type menu.
	Label string
}

// Blocks are the specs for the block types.
var Blocks = []*BlockSpec{
	// A plain paragraph. Represented in the DOM as a <p> element.
	{Type: model.TypeText, Tag: atom.P, Label: "Text"},

	// A heading, with a level between 1 and 3. Represented as a <div> with
	// the class heading-1 to heading-3.
	{Type: model.TypeHeading, Tag: atom.Div, Class: "heading-", Label: "Heading"},

	// A to-do item, with a checkbox and an indentation. The editable part is
	// a <span> inside a div.todo-block.
	{Type: model.TypeTodo, Tag: atom.Span, Class: "todo-block", Label: "To-do list"},
}

// Block returns the spec for a block type, or nil.
func Block(typ model.BlockType) *BlockSpec {
	for _, spec := range Blocks {
		if spec.Type == typ {
			return spec
		}
	}
	return nil
}

// A BlockChoice is an entry of the block type menu.
type BlockChoice struct {
	Label        string
	Type         model.BlockType
	HeadingLevel int
}

// Attrs returns the attributes to set on a block to convert it.
func (c BlockChoice) Attrs() model.Attrs {
	attrs := model.Attrs{model.AttrType: c.Type}
	if c.Type == model.TypeHeading {
		attrs[model.AttrHeadingLevel] = c.HeadingLevel
	}
	return attrs
}

// Choices are the entries of the block type menu, in order.
var Choices = []BlockChoice{
	{Label: "Text", Type: model.TypeText},
	{Label: "Heading 1", Type: model.TypeHeading, HeadingLevel: 1},
	{Label: "Heading 2", Type: model.TypeHeading, HeadingLevel: 2},
	{Label: "Heading 3", Type: model.TypeHeading, HeadingLevel: 3},
	{Label: "To-do list", Type: model.TypeTodo},
}

// ChoiceOf returns the index in Choices matching the block.
func ChoiceOf(b *model.Block) int {
	for i, c := range Choices {
		if c.Type == b.Type && c.HeadingLevel == b.HeadingLevel {
			return i
		}
	}
	return 0
}

// A MarkSpec describes an inline style.
type MarkSpec struct {
	// The command applying the mark.
	Command string
	// The element created for the mark.
	Tag atom.Atom
	// Other elements that have the same meaning, like <strong> for bold.
	Aliases []atom.Atom
	// The label on the toolbar button.
	Label string
}

// Marks are the specs for the inline styles.
var Marks = []*MarkSpec{
	// Rendered as <b>, <strong> also matches.
	{Command: Bold, Tag: atom.B, Aliases: []atom.Atom{atom.Strong}, Label: "B"},

	// Rendered as <i>, <em> also matches.
	{Command: Italic, Tag: atom.I, Aliases: []atom.Atom{atom.Em}, Label: "I"},

	{Command: Underline, Tag: atom.U, Label: "U"},

	// Rendered as <s>, <strike> and <del> also match.
	{Command: StrikeThrough, Tag: atom.S, Aliases: []atom.Atom{atom.Strike, atom.Del}, Label: "S"},

	// Code font. Represented as a <code> element.
	{Command: Code, Tag: atom.Code, Label: "<>"},

	// A link, with href, target and rel attributes.
	{Command: Link, Tag: atom.A, Label: "Link"},
}

// Mark returns the spec for a command, or nil when the command is unknown.
func Mark(command string) *MarkSpec {
	for _, spec := range Marks {
		if spec.Command == command {
			return spec
		}
	}
	return nil
}

// MarkOf returns the spec of the mark represented by the element, or nil.
func MarkOf(n *html.Node) *MarkSpec {
	for _, spec := range Marks {
		if spec.Matches(n) {
			return spec
		}
	}
	return nil
}

// Matches tells if the node is an element for this mark.
func (m *MarkSpec) Matches(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom == m.Tag {
		return true
	}
	for _, alias := range m.Aliases {
		if n.DataAtom == alias {
			return true
		}
	}
	return false
}

// Selector returns a CSS selector matching the elements of this mark.
func (m *MarkSpec) Selector() string {
	sel := m.Tag.String()
	for _, alias := range m.Aliases {
		sel += ", " + alias.String()
	}
	return sel
}

// NewElement creates a detached element for this mark.
func (m *MarkSpec) NewElement() *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: m.Tag, Data: m.Tag.String()}
}
