package editor

import (
	"github.com/cozy/blockedit/richtext"
	"golang.org/x/net/html"
)

// Rect is the bounding box of a selection, in the units of the host
// (pixels for a browser, cells for a terminal).
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Selection is the current text selection of the host.
type Selection struct {
	// The block where the selection is.
	BlockID string
	// The selected part of the live tree of the block.
	Range *richtext.Range
	// Where the selection is shown.
	Bounds Rect
}

// Collapsed tells if nothing is selected. A range covering no text, like
// one between the end of a text node and the start of the next one, selects
// nothing.
func (s *Selection) Collapsed() bool {
	return s == nil || s.Range == nil || s.Range.Empty()
}

// A Surface is the host rendering the blocks. It owns the live trees of the
// blocks being edited and the text selection.
type Surface interface {
	// Root returns the live editable element of a block, or nil when the
	// block is not mounted.
	Root(id string) *html.Node
	// Focus gives the focus to a block and puts the caret at the end of its
	// content. It returns false when the block is not mounted.
	Focus(id string) bool
	// Selection returns the current selection, or nil.
	Selection() *Selection
	// Select replaces the selection, after the live tree has been changed.
	Select(id string, r *richtext.Range)
}

// A Prompter asks the user for a value. The answer is given to done, with
// ok set to false when the user cancels.
type Prompter interface {
	Prompt(message, initial string, done func(value string, ok bool))
}

// An Opener opens a URL, like a browser opening a new tab.
type Opener interface {
	Open(url string)
}
