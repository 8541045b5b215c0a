package editor

import (
	"github.com/cozy/blockedit/richtext"
	"github.com/cozy/blockedit/schema/basic"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToolbarStates tells which styles are active for the selection.
type ToolbarStates struct {
	Bold          bool
	Italic        bool
	Underline     bool
	StrikeThrough bool
	Code          bool
	Link          bool
}

// Active returns the state of a command.
func (s ToolbarStates) Active(command string) bool {
	switch command {
	case basic.Bold:
		return s.Bold
	case basic.Italic:
		return s.Italic
	case basic.Underline:
		return s.Underline
	case basic.StrikeThrough:
		return s.StrikeThrough
	case basic.Code:
		return s.Code
	case basic.Link:
		return s.Link
	}
	return false
}

// Toolbar is the floating formatting toolbar, shown above a non-empty
// selection.
type Toolbar struct {
	Visible bool
	Top     int
	Left    int
	States  ToolbarStates
}

// Toolbar returns the current state of the toolbar.
func (e *Editor) Toolbar() Toolbar {
	return e.toolbar
}

func (e *Editor) queryStates(r *richtext.Range) ToolbarStates {
	if r == nil {
		return ToolbarStates{}
	}
	parent := richtext.SelectionParent(r)
	return ToolbarStates{
		Bold:          e.commander.State(basic.Bold, r),
		Italic:        e.commander.State(basic.Italic, r),
		Underline:     e.commander.State(basic.Underline, r),
		StrikeThrough: e.commander.State(basic.StrikeThrough, r),
		Code:          richtext.Is(parent, atom.Code),
		Link:          richtext.Is(parent, atom.A),
	}
}

func (e *Editor) selection() *Selection {
	if e.surface == nil {
		return nil
	}
	return e.surface.Selection()
}

// SelectionChanged is called by the host on mouse up and key up. The
// toolbar is shown above a non-collapsed selection, and hidden otherwise.
func (e *Editor) SelectionChanged() {
	sel := e.selection()
	if sel.Collapsed() {
		e.toolbar.Visible = false
		return
	}
	e.toolbar = Toolbar{
		Visible: true,
		Top:     sel.Bounds.Top - e.toolbarOffset,
		Left:    sel.Bounds.Left,
		States:  e.queryStates(sel.Range),
	}
}

// MouseDown is called by the host when a mouse button is pressed. A click
// outside of the editor hides the toolbar, unless some text is selected.
func (e *Editor) MouseDown(inside bool) {
	if inside {
		return
	}
	if e.selection().Collapsed() {
		e.toolbar.Visible = false
	}
}

// ApplyFormatting applies a style to the selection. The live tree of the
// block is changed. The content of the block is updated when it loses the
// focus.
func (e *Editor) ApplyFormatting(command string) {
	sel := e.selection()
	if sel == nil || sel.Range == nil {
		return
	}
	r, ok := richtext.ApplyFormatting(e.commander, command, sel.Range)
	if !ok {
		e.logger.Debug("formatting ignored", zap.String("command", command), zap.String("block_id", sel.BlockID))
		return
	}
	e.logger.Debug("formatting applied", zap.String("command", command), zap.String("block_id", sel.BlockID))
	e.surface.Select(sel.BlockID, r)
	e.toolbar.States = e.queryStates(r)
}

// AddLink asks for an URL, and replaces the selection by a link to it.
func (e *Editor) AddLink() {
	sel := e.selection()
	if sel.Collapsed() || e.prompter == nil {
		return
	}
	id, rng := sel.BlockID, sel.Range
	e.prompter.Prompt("Enter the URL:", "https://", func(url string, ok bool) {
		if !ok || url == "" {
			return
		}
		r, inserted := richtext.InsertLink(rng, url)
		if !inserted {
			return
		}
		e.logger.Debug("link added", zap.String("command", basic.Link), zap.String("block_id", id))
		e.surface.Select(id, r)
		e.toolbar.States = e.queryStates(r)
	})
}

// LinkClick is called by the host on a click on an element. A click on a
// link opens it. It returns true when the default action of the host must
// not happen.
func (e *Editor) LinkClick(target *html.Node) bool {
	if !richtext.Is(target, atom.A) {
		return false
	}
	if e.opener != nil {
		e.opener.Open(richtext.Href(target))
	}
	return true
}

// LinkDoubleClick is called by the host on a double click on an element. A
// double click on a link asks for a new URL.
func (e *Editor) LinkDoubleClick(target *html.Node) bool {
	if !richtext.Is(target, atom.A) {
		return false
	}
	if e.prompter != nil {
		e.prompter.Prompt("Update link URL:", richtext.Href(target), func(url string, ok bool) {
			if ok && richtext.EditLink(target, url) {
				e.logger.Debug("link edited", zap.String("command", basic.Link))
			}
		})
	}
	return true
}
