package richtext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ClosestElement returns the first element matching one of the selectors,
// starting at n and going up through its ancestors. A text node starts the
// search at its parent.
func ClosestElement(n *html.Node, selectors ...string) *html.Node {
	if n != nil && n.Type == html.TextNode {
		n = n.Parent
	}
	if n == nil || len(selectors) == 0 {
		return nil
	}
	found := goquery.NewDocumentFromNode(n).Closest(strings.Join(selectors, ", "))
	if found.Length() == 0 {
		return nil
	}
	return found.Get(0)
}

// ParentElement returns the deepest element containing the whole range: its
// common ancestor, or the parent of the common ancestor when it is a text
// node.
func ParentElement(r *Range) *html.Node {
	if r == nil {
		return nil
	}
	n := r.CommonAncestor()
	if n != nil && n.Type == html.TextNode {
		n = n.Parent
	}
	return n
}

// SelectionParent is like ParentElement, except that the link is returned
// when the range is inside a link.
func SelectionParent(r *Range) *html.Node {
	parent := ParentElement(r)
	if link := ClosestElement(parent, "a"); link != nil {
		return link
	}
	return parent
}

// Is tells if n is an element of the given type.
func Is(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// Links returns the links under root, in document order.
func Links(root *html.Node) []*html.Node {
	return goquery.NewDocumentFromNode(root).Find("a[href]").Nodes
}

// Attr returns the value of an attribute of n.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the value of an attribute of n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
