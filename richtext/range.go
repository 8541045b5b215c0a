package richtext

import (
	"fmt"

	"golang.org/x/net/html"
)

// A Range is a part of a tree, between two boundary points. A boundary point
// is a container and an offset: in runes for a text node, in children for
// an element.
type Range struct {
	StartContainer *html.Node
	StartOffset    int
	EndContainer   *html.Node
	EndOffset      int
}

// NewRange creates a range between two boundary points.
func NewRange(startContainer *html.Node, startOffset int, endContainer *html.Node, endOffset int) *Range {
	return &Range{
		StartContainer: startContainer,
		StartOffset:    startOffset,
		EndContainer:   endContainer,
		EndOffset:      endOffset,
	}
}

// Caret creates a collapsed range.
func Caret(container *html.Node, offset int) *Range {
	return NewRange(container, offset, container, offset)
}

// SelectNodeContents creates a range over the contents of n.
func SelectNodeContents(n *html.Node) *Range {
	return NewRange(n, 0, n, nodeLength(n))
}

// Collapsed is true when the start and end boundary points are the same.
func (r *Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

// Empty is true when the range covers no text.
func (r *Range) Empty() bool {
	return r.Collapsed() || r.String() == ""
}

// CommonAncestor returns the deepest node containing both boundary points.
func (r *Range) CommonAncestor() *html.Node {
	ancestors := map[*html.Node]struct{}{}
	for n := r.StartContainer; n != nil; n = n.Parent {
		ancestors[n] = struct{}{}
	}
	for n := r.EndContainer; n != nil; n = n.Parent {
		if _, ok := ancestors[n]; ok {
			return n
		}
	}
	return nil
}

// String returns the text covered by the range.
func (r *Range) String() string {
	root := r.CommonAncestor()
	if root == nil {
		return ""
	}
	start := position(root, r.StartContainer, r.StartOffset)
	end := position(root, r.EndContainer, r.EndOffset)
	text := []rune(TextContent(root))
	if start > len(text) {
		start = len(text)
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return string(text[start:end])
}

// Offsets returns the boundary points of the range as offsets in the plain
// text of root.
func (r *Range) Offsets(root *html.Node) (start, end int) {
	return position(root, r.StartContainer, r.StartOffset), position(root, r.EndContainer, r.EndOffset)
}

// GoString is used for debugging.
func (r *Range) GoString() string {
	return fmt.Sprintf("Range(%s:%d, %s:%d)", describe(r.StartContainer), r.StartOffset, describe(r.EndContainer), r.EndOffset)
}

func describe(n *html.Node) string {
	if n == nil {
		return "nil"
	}
	if n.Type == html.TextNode {
		return fmt.Sprintf("%q", n.Data)
	}
	return "<" + n.Data + ">"
}

// RangeFromOffsets creates a range from offsets in the plain text of root.
// The boundary points are put in text nodes, as deep as possible inside the
// range: a start offset between two text nodes is at the beginning of the
// second one, an end offset at the end of the first one. Equal offsets give
// a caret at the end of the first text node.
func RangeFromOffsets(root *html.Node, start, end int) *Range {
	if end < start {
		start, end = end, start
	}
	if start == end {
		return Caret(pointAt(root, start, false))
	}
	sc, so := pointAt(root, start, true)
	ec, eo := pointAt(root, end, false)
	return NewRange(sc, so, ec, eo)
}

func pointAt(root *html.Node, pos int, forward bool) (*html.Node, int) {
	texts := textNodes(root, nil)
	if len(texts) == 0 {
		return root, 0
	}
	if pos < 0 {
		pos = 0
	}
	acc := 0
	last := len(texts) - 1
	for i, t := range texts {
		l := runeLen(t.Data)
		if i == last || pos < acc+l || (!forward && pos == acc+l) {
			offset := pos - acc
			if offset > l {
				offset = l
			}
			return t, offset
		}
		acc += l
	}
	return root, 0
}

func textNodes(n *html.Node, acc []*html.Node) []*html.Node {
	if n.Type == html.TextNode {
		return append(acc, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		acc = textNodes(c, acc)
	}
	return acc
}

// position converts a boundary point to an offset in the plain text of
// root.
func position(root, container *html.Node, offset int) int {
	if container.Type == html.TextNode {
		if l := runeLen(container.Data); offset > l {
			offset = l
		}
		return textBefore(root, container) + offset
	}
	if child := childAt(container, offset); child != nil && offset >= 0 {
		return textBefore(root, child)
	}
	return textBefore(root, container) + runeLen(TextContent(container))
}

// textBefore counts the runes of text before n in root, in document order.
func textBefore(root, n *html.Node) int {
	count := 0
	var walk func(cur *html.Node) bool
	walk = func(cur *html.Node) bool {
		if cur == n {
			return true
		}
		if cur.Type == html.TextNode {
			count += runeLen(cur.Data)
			return false
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return count
}

// Contains tells if n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

var _ fmt.GoStringer = (*Range)(nil)
