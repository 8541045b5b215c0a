package richtext

import "golang.org/x/net/html"

// splitText splits a text node at the offset (in runes). The second part is
// inserted after n and returned.
func splitText(n *html.Node, offset int) *html.Node {
	at := byteOffset(n.Data, offset)
	after := NewText(n.Data[at:])
	n.Data = n.Data[:at]
	n.Parent.InsertBefore(after, n.NextSibling)
	return after
}

// splitTo splits the nodes between the boundary point and ancestor, so that
// the boundary point falls between two children of ancestor. It returns the
// index of the child of ancestor after the boundary point.
func splitTo(ancestor, container *html.Node, offset int) int {
	idx := offset
	if container.Type == html.TextNode {
		i := index(container)
		switch {
		case offset <= 0:
			idx = i
		case offset >= runeLen(container.Data):
			idx = i + 1
		default:
			splitText(container, offset)
			idx = i + 1
		}
		container = container.Parent
	}
	for container != nil && container != ancestor {
		parent := container.Parent
		if parent == nil {
			break
		}
		i := index(container)
		switch {
		case idx <= 0:
			idx = i
		case idx >= nodeLength(container):
			idx = i + 1
		default:
			clone := shallowClone(container)
			for c := childAt(container, idx); c != nil; {
				next := c.NextSibling
				container.RemoveChild(c)
				clone.AppendChild(c)
				c = next
			}
			parent.InsertBefore(clone, container.NextSibling)
			idx = i + 1
		}
		container = parent
	}
	return idx
}

// split splits the tree at both boundary points of the range. It returns the
// common ancestor and the indexes of its first child inside the range and
// of its first child after the range.
func (r *Range) split() (parent *html.Node, start, end int) {
	parent = r.CommonAncestor()
	if parent.Type == html.TextNode {
		parent = parent.Parent
	}
	endIdx := splitTo(parent, r.EndContainer, r.EndOffset)
	stop := childAt(parent, endIdx)
	start = splitTo(parent, r.StartContainer, r.StartOffset)
	if stop == nil {
		end = nodeLength(parent)
	} else {
		end = index(stop)
	}
	return parent, start, end
}

// Wrap moves the content of the range inside elem, and puts elem in its
// place. The ancestors of the boundary points are split when needed. It
// returns the range over the contents of elem, or nil when the range covers
// no text.
func Wrap(r *Range, elem *html.Node) *Range {
	if r == nil || r.Empty() || r.CommonAncestor() == nil {
		return nil
	}
	parent, start, end := r.split()
	before := childAt(parent, end)
	c := childAt(parent, start)
	for i := start; i < end && c != nil; i++ {
		next := c.NextSibling
		parent.RemoveChild(c)
		elem.AppendChild(c)
		c = next
	}
	parent.InsertBefore(elem, before)
	return SelectNodeContents(elem)
}

// unwrapRange removes elem from the part of the tree covered by the range,
// which must be inside elem. elem is split at the boundary points, and the
// parts outside of the range keep the element. It returns the range over
// the content that was unwrapped.
func unwrapRange(elem *html.Node, r *Range) *Range {
	parent := elem.Parent
	if parent == nil {
		return nil
	}
	stop := childAt(parent, splitTo(parent, r.EndContainer, r.EndOffset))
	start := splitTo(parent, r.StartContainer, r.StartOffset)
	n := 0
	for c := childAt(parent, start); c != nil && c != stop; {
		next := c.NextSibling
		if c.Type == html.ElementNode && c.Data == elem.Data {
			for child := c.FirstChild; child != nil; child = c.FirstChild {
				c.RemoveChild(child)
				parent.InsertBefore(child, c)
				n++
			}
			parent.RemoveChild(c)
		} else {
			n++
		}
		c = next
	}
	return NewRange(parent, start, parent, start+n)
}

// Unwrap replaces elem by its children. It returns the range over the
// children, or nil when elem has no parent.
func Unwrap(elem *html.Node) *Range {
	parent := elem.Parent
	if parent == nil {
		return nil
	}
	i := index(elem)
	n := 0
	for c := elem.FirstChild; c != nil; c = elem.FirstChild {
		elem.RemoveChild(c)
		parent.InsertBefore(c, elem)
		n++
	}
	parent.RemoveChild(elem)
	return NewRange(parent, i, parent, i+n)
}

// DeleteContents removes the content of the range. It returns the collapsed
// range where the content was.
func DeleteContents(r *Range) *Range {
	if r.Collapsed() || r.CommonAncestor() == nil {
		return r
	}
	parent, start, end := r.split()
	c := childAt(parent, start)
	for i := start; i < end && c != nil; i++ {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	return Caret(parent, start)
}

// InsertNode inserts n at the start of the range, splitting a text node if
// needed.
func InsertNode(r *Range, n *html.Node) {
	container, offset := r.StartContainer, r.StartOffset
	if container.Type == html.TextNode {
		switch {
		case offset <= 0:
			container.Parent.InsertBefore(n, container)
		case offset >= runeLen(container.Data):
			container.Parent.InsertBefore(n, container.NextSibling)
		default:
			after := splitText(container, offset)
			container.Parent.InsertBefore(n, after)
		}
		return
	}
	container.InsertBefore(n, childAt(container, offset))
}

// ReplaceNode puts n in place of old.
func ReplaceNode(old, n *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	parent.InsertBefore(n, old)
	parent.RemoveChild(old)
}
