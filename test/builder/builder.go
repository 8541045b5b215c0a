// Package builder provides helpers to write documents in tests, like
// Doc(P("hello"), H1("title"), Todo("milk", Indent(1))).
package builder

import (
	"strconv"
	"strings"

	"github.com/cozy/blockedit/model"
)

// Spec holds the attributes given to every block made by a builder.
type Spec map[string]interface{}

// BlockBuilder creates a block. Its arguments are strings, concatenated as
// the content, and the ID, Indent and Checked modifiers.
type BlockBuilder func(args ...interface{}) *model.Block

// ID sets the id of the built block.
type ID string

// Indent sets the indentation of a built to-do.
type Indent int

type checked struct{}

// Checked marks a built to-do as completed.
var Checked = checked{}

func takeAttrs(spec Spec, args []interface{}) (string, model.Attrs) {
	attrs := model.Attrs{}
	for k, v := range spec {
		attrs[k] = v
	}
	var id string
	var content strings.Builder
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			content.WriteString(a)
		case ID:
			id = string(a)
		case Indent:
			attrs[model.AttrIndentation] = int(a)
		case checked:
			attrs[model.AttrCompleted] = true
		}
	}
	attrs[model.AttrContent] = content.String()
	return id, attrs
}

func block(spec Spec) BlockBuilder {
	return func(args ...interface{}) *model.Block {
		id, attrs := takeAttrs(spec, args)
		return (&model.Block{ID: id}).WithAttrs(attrs)
	}
}

// Builders creates a builder for each named spec.
func Builders(names map[string]Spec) map[string]BlockBuilder {
	result := make(map[string]BlockBuilder, len(names))
	for name, spec := range names {
		result[name] = block(spec)
	}
	return result
}

var out = Builders(map[string]Spec{
	"p":    {model.AttrType: "text"},
	"h1":   {model.AttrType: "heading", model.AttrHeadingLevel: 1},
	"h2":   {model.AttrType: "heading", model.AttrHeadingLevel: 2},
	"h3":   {model.AttrType: "heading", model.AttrHeadingLevel: 3},
	"todo": {model.AttrType: "todo"},
})

var (
	P    = out["p"]
	H1   = out["h1"]
	H2   = out["h2"]
	H3   = out["h3"]
	Todo = out["todo"]
)

// Doc creates a document. Blocks without an id get their 1-based position as
// id ("1", "2", ...).
func Doc(blocks ...*model.Block) *model.Document {
	for i, b := range blocks {
		if b.ID == "" {
			b.ID = strconv.Itoa(i + 1)
		}
	}
	return model.MustDocument(blocks...)
}

// Seq returns an id generator producing "n1", "n2", ...
func Seq() func() string {
	n := 0
	return func() string {
		n++
		return "n" + strconv.Itoa(n)
	}
}
