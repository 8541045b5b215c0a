package richtext

import (
	"github.com/cozy/blockedit/schema/basic"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Commander executes the formatting commands of the host, and reports if
// a style is active on a range. It is the equivalent of execCommand and
// queryCommandState in a browser.
type Commander interface {
	// Exec applies the command to the range. It returns the range over the
	// formatted content, and false when nothing has been done.
	Exec(command string, r *Range) (*Range, bool)
	// State tells if the style of the command is active for the range.
	State(command string, r *Range) bool
}

// NativeCommander toggles the bold, italic, underline and strikeThrough
// styles: it wraps the range in the element of the mark, or removes the
// element of the mark enclosing the range from the selected part only.
type NativeCommander struct{}

func nativeMark(command string) *basic.MarkSpec {
	switch command {
	case basic.Bold, basic.Italic, basic.Underline, basic.StrikeThrough:
		return basic.Mark(command)
	}
	return nil
}

// State is a method of the Commander interface.
func (NativeCommander) State(command string, r *Range) bool {
	mark := nativeMark(command)
	if mark == nil || r == nil {
		return false
	}
	return ClosestElement(r.CommonAncestor(), mark.Selector()) != nil
}

// Exec is a method of the Commander interface.
func (NativeCommander) Exec(command string, r *Range) (*Range, bool) {
	mark := nativeMark(command)
	if mark == nil || r == nil || r.Empty() {
		return nil, false
	}
	if elem := ClosestElement(r.CommonAncestor(), mark.Selector()); elem != nil {
		rng := unwrapRange(elem, r)
		return rng, rng != nil
	}
	rng := Wrap(r, mark.NewElement())
	return rng, rng != nil
}

var _ Commander = NativeCommander{}

// ToggleCode removes the code element when the range is directly inside
// one. Else, the text of the range replaces its content, inside a new code
// element: the inline styles of the range are lost. It returns the range
// over the affected content.
func ToggleCode(r *Range) (*Range, bool) {
	if r == nil {
		return nil, false
	}
	if parent := ParentElement(r); Is(parent, atom.Code) {
		rng := Unwrap(parent)
		return rng, rng != nil
	}
	text := r.String()
	if text == "" {
		return nil, false
	}
	code := basic.Mark(basic.Code).NewElement()
	code.AppendChild(NewText(text))
	InsertNode(DeleteContents(r), code)
	return SelectNodeContents(code), true
}

// ApplyFormatting applies a formatting command to the range. The code
// command is handled by ToggleCode. When the range is inside a code
// element, the whole code element is wrapped in the element of the style.
// The other cases are left to the commander.
func ApplyFormatting(c Commander, command string, r *Range) (*Range, bool) {
	if r == nil {
		return nil, false
	}
	if command == basic.Code {
		return ToggleCode(r)
	}
	if parent := ParentElement(r); Is(parent, atom.Code) && parent.Parent != nil {
		var wrapper *html.Node
		if mark := nativeMark(command); mark != nil {
			wrapper = mark.NewElement()
		} else {
			wrapper = NewElement(atom.Span)
		}
		wrapper.AppendChild(Clone(parent))
		ReplaceNode(parent, wrapper)
		return SelectNodeContents(wrapper), true
	}
	return c.Exec(command, r)
}

// NewLink creates a link opening the URL in a new tab.
func NewLink(url string) *html.Node {
	return NewElement(atom.A,
		html.Attribute{Key: "href", Val: url},
		html.Attribute{Key: "target", Val: "_blank"},
		html.Attribute{Key: "rel", Val: "noopener noreferrer"},
	)
}

// InsertLink replaces the content of the range by a link to the URL, with
// the text of the range. Inside a code element, the text of the link is
// itself in a code element. It returns the range over the link content.
func InsertLink(r *Range, url string) (*Range, bool) {
	if r == nil || url == "" {
		return nil, false
	}
	text := r.String()
	if text == "" {
		return nil, false
	}
	link := NewLink(url)
	if Is(ParentElement(r), atom.Code) {
		code := basic.Mark(basic.Code).NewElement()
		code.AppendChild(NewText(text))
		link.AppendChild(code)
	} else {
		link.AppendChild(NewText(text))
	}
	InsertNode(DeleteContents(r), link)
	return SelectNodeContents(link), true
}

// Href returns the target of a link.
func Href(link *html.Node) string {
	return Attr(link, "href")
}

// EditLink changes the target of a link. Nothing happens when url is empty
// or the same as the current one.
func EditLink(link *html.Node, url string) bool {
	if !Is(link, atom.A) || url == "" || url == Href(link) {
		return false
	}
	SetAttr(link, "href", url)
	return true
}
