package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// BlockType is the kind of a block. Each type maps to a distinct editable
// element when the document is rendered.
type BlockType string

const (
	// TypeText is a plain paragraph.
	TypeText BlockType = "text"
	// TypeHeading is a heading, with a level between 1 and MaxHeadingLevel.
	TypeHeading BlockType = "heading"
	// TypeTodo is a to-do item that can be completed and indented.
	TypeTodo BlockType = "todo"
)

// MaxHeadingLevel is the deepest heading level a block can have.
const MaxHeadingLevel = 3

// Valid reports whether t is one of the known block types.
func (t BlockType) Valid() bool {
	switch t {
	case TypeText, TypeHeading, TypeTodo:
		return true
	}
	return false
}

// Names of the attributes that can be read from and written to a block.
const (
	AttrType         = "type"
	AttrHeadingLevel = "headingLevel"
	AttrCompleted    = "completed"
	AttrIndentation  = "indentation"
	AttrContent      = "content"
)

// Attrs maps attribute names to values.
type Attrs map[string]interface{}

// A Block is one editable unit of a document: a paragraph, a heading or a
// to-do item.
//
// Blocks are persistent data structures. Instead of changing them, you create
// new ones with WithAttrs. Old documents keep pointing at the old blocks.
//
// Do not directly mutate the properties of a Block.
type Block struct {
	// An opaque identifier, stable for the lifetime of the block.
	ID string `json:"id" yaml:"id"`
	// The type of block that this is.
	Type BlockType `json:"type" yaml:"type"`
	// The inline markup of the block: text, possibly with b, i, u, s, code
	// and a elements.
	Content string `json:"content" yaml:"content"`
	// For headings, the level (1 to MaxHeadingLevel). Zero otherwise.
	HeadingLevel int `json:"headingLevel,omitempty" yaml:"headingLevel,omitempty"`
	// For to-dos, whether the item is checked.
	Completed bool `json:"completed,omitempty" yaml:"completed,omitempty"`
	// For to-dos, the nesting depth.
	Indentation int `json:"indentation,omitempty" yaml:"indentation,omitempty"`
}

// NewBlockID returns a fresh random block identifier.
func NewBlockID() string {
	return uuid.NewString()
}

// NewBlock creates a normalized block.
func NewBlock(id string, typ BlockType, content string) *Block {
	b := &Block{ID: id, Type: typ, Content: content}
	b.normalize()
	return b
}

// NewHeading creates a heading block of the given level.
func NewHeading(id string, level int, content string) *Block {
	b := &Block{ID: id, Type: TypeHeading, Content: content, HeadingLevel: level}
	b.normalize()
	return b
}

// NewTodo creates a to-do block.
func NewTodo(id string, content string, completed bool, indentation int) *Block {
	b := &Block{ID: id, Type: TypeTodo, Content: content, Completed: completed, Indentation: indentation}
	b.normalize()
	return b
}

// normalize clears the fields that are not defined for the block type.
func (b *Block) normalize() {
	if !b.Type.Valid() {
		b.Type = TypeText
	}
	if b.Type == TypeHeading {
		if b.HeadingLevel < 1 {
			b.HeadingLevel = 1
		}
		if b.HeadingLevel > MaxHeadingLevel {
			b.HeadingLevel = MaxHeadingLevel
		}
	} else {
		b.HeadingLevel = 0
	}
	if b.Type != TypeTodo {
		b.Completed = false
		b.Indentation = 0
	}
	if b.Indentation < 0 {
		b.Indentation = 0
	}
}

// Normalized returns a copy of the block where the fields that are not
// defined for its type are cleared. It is useful for blocks decoded from a
// file.
func (b *Block) Normalized() *Block {
	cpy := *b
	cpy.normalize()
	return &cpy
}

// Attrs returns the attributes of this block.
func (b *Block) Attrs() Attrs {
	attrs := Attrs{
		AttrType:    string(b.Type),
		AttrContent: b.Content,
	}
	switch b.Type {
	case TypeHeading:
		attrs[AttrHeadingLevel] = b.HeadingLevel
	case TypeTodo:
		attrs[AttrCompleted] = b.Completed
		attrs[AttrIndentation] = b.Indentation
	}
	return attrs
}

// WithAttrs creates a copy of this block with the given attributes set. The
// result is normalized: switching the type clears the fields that belong to
// the old type. Unknown attributes and values of the wrong kind are ignored.
func (b *Block) WithAttrs(attrs Attrs) *Block {
	cpy := *b
	if v, ok := attrs[AttrType]; ok {
		switch t := v.(type) {
		case BlockType:
			cpy.Type = t
		case string:
			cpy.Type = BlockType(t)
		}
	}
	if v, ok := attrs[AttrContent].(string); ok {
		cpy.Content = v
	}
	if v, ok := toInt(attrs[AttrHeadingLevel]); ok {
		cpy.HeadingLevel = v
	}
	if v, ok := attrs[AttrCompleted].(bool); ok {
		cpy.Completed = v
	}
	if v, ok := toInt(attrs[AttrIndentation]); ok {
		cpy.Indentation = v
	}
	if cpy.Type != b.Type {
		// The fields of the previous type are not carried over.
		if _, ok := attrs[AttrHeadingLevel]; !ok {
			cpy.HeadingLevel = 0
		}
		if _, ok := attrs[AttrCompleted]; !ok {
			cpy.Completed = false
		}
		if _, ok := attrs[AttrIndentation]; !ok {
			cpy.Indentation = 0
		}
	}
	cpy.normalize()
	return &cpy
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// Text returns the plain text of the block, without inline markup.
func (b *Block) Text() string {
	if !strings.ContainsAny(b.Content, "<&") {
		return b.Content
	}
	nodes, err := html.ParseFragment(strings.NewReader(b.Content), contentContext())
	if err != nil {
		return b.Content
	}
	var sb strings.Builder
	for _, n := range nodes {
		collectText(n, &sb)
	}
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// Eq tests whether two blocks represent the same piece of document.
func (b *Block) Eq(other *Block) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil {
		return false
	}
	return *b == *other
}

// SameMarkup compares everything but the id and the content.
func (b *Block) SameMarkup(other *Block) bool {
	return b.Type == other.Type && b.HeadingLevel == other.HeadingLevel &&
		b.Completed == other.Completed && b.Indentation == other.Indentation
}

// String returns a string representation of this block for debugging
// purposes.
func (b *Block) String() string {
	name := string(b.Type)
	switch b.Type {
	case TypeHeading:
		name = fmt.Sprintf("h%d", b.HeadingLevel)
	case TypeTodo:
		if b.Indentation > 0 {
			name += fmt.Sprintf("[%d]", b.Indentation)
		}
		if b.Completed {
			name += "(x)"
		}
	}
	return fmt.Sprintf("%s(%q)", name, b.Content)
}
