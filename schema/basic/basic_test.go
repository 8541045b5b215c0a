package basic_test

import (
	"testing"

	"github.com/cozy/blockedit/model"
	. "github.com/cozy/blockedit/schema/basic"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func el(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func TestMarkMatches(t *testing.T) {
	// matches the main tag and the aliases
	assert.True(t, Mark(Bold).Matches(el(atom.B)))
	assert.True(t, Mark(Bold).Matches(el(atom.Strong)))
	assert.True(t, Mark(StrikeThrough).Matches(el(atom.Del)))

	// does not match other elements or text
	assert.False(t, Mark(Italic).Matches(el(atom.B)))
	assert.False(t, Mark(Code).Matches(&html.Node{Type: html.TextNode, Data: "code"}))
	assert.False(t, Mark(Code).Matches(nil))
}

func TestMarkOf(t *testing.T) {
	assert.Equal(t, Italic, MarkOf(el(atom.Em)).Command)
	assert.Equal(t, Link, MarkOf(el(atom.A)).Command)
	assert.Nil(t, MarkOf(el(atom.Span)))
	assert.Nil(t, Mark("blink"))
}

func TestSelector(t *testing.T) {
	assert.Equal(t, "s, strike, del", Mark(StrikeThrough).Selector())
	assert.Equal(t, "u", Mark(Underline).Selector())
}

func TestChoices(t *testing.T) {
	// converts to a heading with its level
	b := model.NewBlock("a", model.TypeText, "x").WithAttrs(Choices[2].Attrs())
	assert.Equal(t, model.TypeHeading, b.Type)
	assert.Equal(t, 2, b.HeadingLevel)
	assert.Equal(t, 2, ChoiceOf(b))

	// finds the to-do entry
	assert.Equal(t, 4, ChoiceOf(model.NewTodo("a", "", false, 0)))
	assert.Equal(t, "To-do list", Block(model.TypeTodo).Label)
}
