package editor

import (
	"strings"

	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/schema/basic"
	"github.com/cozy/blockedit/schema/list"
	"github.com/cozy/blockedit/transform"
)

// Keys handled by the dispatcher.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyTab       = "Tab"
	KeySpace     = " "
)

// Bullet is the text put in a block by the "-" shortcut.
const Bullet = basic.Bullet

// A KeyEvent is a key pressed while a block has the focus.
type KeyEvent struct {
	Key     string
	BlockID string
	// The text currently shown in the block, which can differ from the
	// content of the block until the edits are committed.
	LiveText string
	// NewID generates the id of an inserted block. model.NewBlockID is used
	// when it is nil.
	NewID func() string
}

// A FocusRequest asks the host to give the focus to a block, with the caret
// at the end of its content.
type FocusRequest struct {
	BlockID string
}

// Result is the outcome of a key event.
type Result struct {
	// The changes to the document, nil when there are none.
	Transform *transform.Transform
	// The default action of the host for the key must not happen.
	PreventDefault bool
	// Where the focus should go after the next render.
	Focus *FocusRequest
	// The text to put in the block being edited, when it changes.
	LiveText *string
}

// Handled tells if the dispatcher did something with the event.
func (r Result) Handled() bool {
	return r.Transform != nil || r.PreventDefault || r.Focus != nil || r.LiveText != nil
}

// Dispatch decides what a key does to the document. It is a pure function:
// the document is not modified, the changes are returned in the transform of
// the result. Unknown block ids and keys are not handled.
func Dispatch(doc *model.Document, ev KeyEvent) Result {
	block, index := doc.Find(ev.BlockID)
	if block == nil {
		return Result{}
	}
	live := strings.TrimSpace(ev.LiveText)
	var res Result
	switch ev.Key {
	case KeyEnter:
		res = enter(doc, block, index, live, ev.NewID)
	case KeyBackspace:
		res = backspace(doc, block, index, live)
	case KeyTab:
		res = tab(doc, block)
	case KeySpace:
		res = shortcut(doc, block, live)
	}
	if res.Transform != nil && !res.Transform.DocChanged() {
		res.Transform = nil
	}
	return res
}

func enter(doc *model.Document, block *model.Block, index int, live string, newID func() string) Result {
	tr := transform.NewTransform(doc)
	res := Result{Transform: tr, PreventDefault: true}
	if block.Type == model.TypeTodo && live == "" {
		if block.Indentation > 0 {
			tr.SetAttrs(block.ID, model.Attrs{model.AttrIndentation: block.Indentation - 1})
		} else {
			tr.SetAttrs(block.ID, model.Attrs{model.AttrType: model.TypeText, model.AttrContent: ""})
		}
		return res
	}
	below := newBlockBelow(block, newID)
	tr.Insert(index+1, below)
	res.Focus = &FocusRequest{BlockID: below.ID}
	return res
}

// newBlockBelow creates the block inserted after block: an empty to-do with
// the same indentation after a to-do, an empty text block otherwise.
func newBlockBelow(block *model.Block, newID func() string) *model.Block {
	if newID == nil {
		newID = model.NewBlockID
	}
	if block.Type == model.TypeTodo {
		return model.NewTodo(newID(), "", false, block.Indentation)
	}
	return model.NewBlock(newID(), model.TypeText, "")
}

func backspace(doc *model.Document, block *model.Block, index int, live string) Result {
	if live != "" {
		return Result{}
	}
	res := Result{PreventDefault: true}
	if index == 0 {
		return res
	}
	previous := doc.Block(index - 1)
	res.Transform = transform.NewTransform(doc).Delete(block.ID)
	res.Focus = &FocusRequest{BlockID: previous.ID}
	return res
}

func tab(doc *model.Document, block *model.Block) Result {
	if block.Type != model.TypeTodo {
		return Result{}
	}
	res := Result{PreventDefault: true}
	if list.CanIndent(doc, block.ID) {
		res.Transform = transform.NewTransform(doc).
			SetAttrs(block.ID, model.Attrs{model.AttrIndentation: block.Indentation + 1})
	}
	return res
}

func shortcut(doc *model.Document, block *model.Block, live string) Result {
	var attrs model.Attrs
	text := ""
	switch live {
	case "#", "##", "###":
		attrs = model.Attrs{model.AttrType: model.TypeHeading, model.AttrHeadingLevel: len(live)}
	case "[]":
		attrs = model.Attrs{model.AttrType: model.TypeTodo, model.AttrCompleted: false, model.AttrIndentation: 0}
	case "-":
		attrs = model.Attrs{model.AttrType: model.TypeText}
		text = Bullet
	default:
		return Result{}
	}
	attrs[model.AttrContent] = ""
	return Result{
		Transform:      transform.NewTransform(doc).SetAttrs(block.ID, attrs),
		PreventDefault: true,
		LiveText:       &text,
	}
}
