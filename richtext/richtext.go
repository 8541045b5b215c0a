// Package richtext edits the inline content of a block as a tree of HTML
// nodes: text with b, i, u, s, code and a elements. Positions in the tree
// are given by ranges, which work like the ranges of the DOM.
package richtext

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cozy/blockedit/schema/basic"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewRoot returns an empty detached element, used as the root of the
// inline content of a block.
func NewRoot() *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
}

// Parse parses inline markup. The nodes are appended to a new root.
func Parse(markup string) (*html.Node, error) {
	root := NewRoot()
	if markup == "" {
		return root, nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), NewRoot())
	if err != nil {
		return nil, fmt.Errorf("cannot parse inline markup: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(markup string) *html.Node {
	root, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return root
}

// Render serializes the children of root to markup.
func Render(root *html.Node) string {
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			// Rendering into a buffer fails only for malformed trees
			// (like a void element with children). Keep the text.
			buf.WriteString(html.EscapeString(TextContent(c)))
		}
	}
	return buf.String()
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// SetText replaces the children of root by a single text node.
func SetText(root *html.Node, text string) {
	for c := root.FirstChild; c != nil; c = root.FirstChild {
		root.RemoveChild(c)
	}
	if text != "" {
		root.AppendChild(NewText(text))
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// NewElement creates a detached element.
func NewElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

// Clone returns a deep copy of n, detached from its parent.
func Clone(n *html.Node) *html.Node {
	cpy := shallowClone(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cpy.AppendChild(Clone(c))
	}
	return cpy
}

func shallowClone(n *html.Node) *html.Node {
	cpy := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		cpy.Attr = make([]html.Attribute, len(n.Attr))
		copy(cpy.Attr, n.Attr)
	}
	return cpy
}

// Normalize cleans the tree under root: adjacent text nodes are merged,
// empty text nodes and empty marks are removed, and marks nested in the
// same mark are unwrapped.
func Normalize(root *html.Node) {
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			if c.Data == "" {
				root.RemoveChild(c)
			} else {
				for next != nil && next.Type == html.TextNode {
					c.Data += next.Data
					after := next.NextSibling
					root.RemoveChild(next)
					next = after
				}
			}
		case html.ElementNode:
			Normalize(c)
			mark := basic.MarkOf(c)
			switch {
			case mark == nil:
			case c.FirstChild == nil:
				root.RemoveChild(c)
			case mark.Command != basic.Link && hasMarkAncestor(root, mark):
				first := c.FirstChild
				Unwrap(c)
				// The unwrapped children may be merged with the text
				// before them.
				if prev := first.PrevSibling; prev != nil {
					next = prev
				} else {
					next = first
				}
			}
		}
		c = next
	}
}

func hasMarkAncestor(n *html.Node, mark *basic.MarkSpec) bool {
	for ; n != nil; n = n.Parent {
		if mark.Matches(n) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// byteOffset converts an offset in runes to an offset in bytes.
func byteOffset(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	i := 0
	for pos := range s {
		if i == runes {
			return pos
		}
		i++
	}
	return len(s)
}

// nodeLength is the length of a node as a boundary point container: the
// number of runes of a text node, or the number of children of an element.
func nodeLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return runeLen(n.Data)
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func index(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

func childAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}
