// Package editor implements the editing state machine of a block document:
// the keyboard rules that change the blocks, the focus hand-off between
// blocks, the formatting toolbar, drag and drop, the menus and the history.
//
// The editor does not render anything. The host gives it a Surface, which
// owns the live trees of the blocks and the selection, and calls the
// methods of the editor on user events. After each render pass, the host
// calls AfterRender so that the focus requests can be honored.
package editor

import (
	"strings"

	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/richtext"
	"github.com/cozy/blockedit/schema/list"
	"github.com/cozy/blockedit/transform"
	"go.uber.org/zap"
)

// Defaults for the options.
const (
	DefaultToolbarOffset = 40
	DefaultHistoryLimit  = 100
)

// Editor holds the document being edited and the state of the editing
// session. It is not safe for concurrent use: all the methods must be
// called from the event loop of the host.
type Editor struct {
	doc       *model.Document
	surface   Surface
	commander richtext.Commander
	prompter  Prompter
	opener    Opener
	logger    *zap.Logger
	newID     func() string

	toolbarOffset int
	toolbar       Toolbar
	menus         Menus
	dragged       string
	focusQueue    []FocusRequest
	history       *history
	subscribers   []func(*model.Document)
}

// Option configures an editor.
type Option func(*Editor)

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) { e.logger = logger }
}

// WithCommander sets how the native styles are applied.
func WithCommander(c richtext.Commander) Option {
	return func(e *Editor) { e.commander = c }
}

// WithPrompter sets how the URLs of links are asked to the user. Without
// a prompter, links cannot be added or edited.
func WithPrompter(p Prompter) Option {
	return func(e *Editor) { e.prompter = p }
}

// WithOpener sets how links are opened.
func WithOpener(o Opener) Option {
	return func(e *Editor) { e.opener = o }
}

// WithIDGenerator sets the function generating the ids of new blocks.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// WithToolbarOffset sets the distance between the toolbar and the top of
// the selection.
func WithToolbarOffset(offset int) Option {
	return func(e *Editor) { e.toolbarOffset = offset }
}

// WithHistoryLimit sets how many changes can be undone.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) { e.history.limit = limit }
}

// New creates an editor for the document, rendered by the surface.
func New(doc *model.Document, surface Surface, opts ...Option) *Editor {
	if doc == nil {
		doc = model.EmptyDocument
	}
	e := &Editor{
		doc:           doc,
		surface:       surface,
		commander:     richtext.NativeCommander{},
		logger:        zap.NewNop(),
		newID:         model.NewBlockID,
		toolbarOffset: DefaultToolbarOffset,
		history:       &history{limit: DefaultHistoryLimit},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Doc returns the current document.
func (e *Editor) Doc() *model.Document {
	return e.doc
}

// Subscribe registers a function called with the new document after each
// change. The host uses it to render again.
func (e *Editor) Subscribe(fn func(*model.Document)) {
	e.subscribers = append(e.subscribers, fn)
}

// commit makes the document of the transform the current one, and records
// it in the history.
func (e *Editor) commit(tr *transform.Transform) bool {
	for _, failure := range tr.Failures() {
		e.logger.Debug("step skipped", zap.String("reason", failure))
	}
	if !tr.DocChanged() {
		return false
	}
	e.history.record(tr)
	e.setDoc(tr.Doc())
	for _, step := range tr.Steps() {
		e.logger.Debug("step applied", zap.Any("step", step.ToJSON()))
	}
	return true
}

func (e *Editor) setDoc(doc *model.Document) {
	e.doc = doc
	if e.dragged != "" && doc.IndexOf(e.dragged) < 0 {
		e.dragged = ""
	}
	for _, fn := range e.subscribers {
		fn(doc)
	}
}

// liveText returns the text shown by the host for a block, or the text of
// the block when it is not mounted.
func (e *Editor) liveText(b *model.Block) string {
	if e.surface != nil {
		if root := e.surface.Root(b.ID); root != nil {
			return richtext.TextContent(root)
		}
	}
	return b.Text()
}

// HandleKeyDown is called by the host when a key is pressed in a block. It
// returns true when the default action of the host for the key must not
// happen.
func (e *Editor) HandleKeyDown(key, id string) bool {
	block, _ := e.doc.Find(id)
	if block == nil {
		e.logger.Debug("key on unknown block", zap.String("key", key), zap.String("block_id", id))
		return false
	}
	res := Dispatch(e.doc, KeyEvent{
		Key:      key,
		BlockID:  id,
		LiveText: e.liveText(block),
		NewID:    e.newID,
	})
	if !res.Handled() {
		return false
	}
	e.logger.Debug("key handled", zap.String("key", key), zap.String("block_id", id))
	if res.Transform != nil {
		e.commit(res.Transform)
	}
	// The host may have mounted a new tree for the block on commit.
	if res.LiveText != nil && e.surface != nil {
		if root := e.surface.Root(id); root != nil {
			richtext.SetText(root, *res.LiveText)
		}
	}
	if res.Focus != nil {
		e.requestFocus(*res.Focus)
	}
	return res.PreventDefault
}

// AddBlockBelow inserts an empty block after the one with the given id, and
// asks for the focus to go to it.
func (e *Editor) AddBlockBelow(id string) {
	block, index := e.doc.Find(id)
	if block == nil {
		return
	}
	below := newBlockBelow(block, e.newID)
	if e.commit(transform.NewTransform(e.doc).Insert(index+1, below)) {
		e.requestFocus(FocusRequest{BlockID: below.ID})
	}
}

// DeleteBlock removes a block.
func (e *Editor) DeleteBlock(id string) {
	if e.commit(transform.NewTransform(e.doc).Delete(id)) {
		e.logger.Debug("block deleted", zap.String("block_id", id))
	}
	e.CloseMenus()
}

// TypeChange is an entry of the block type menu.
type TypeChange struct {
	Type         model.BlockType
	HeadingLevel int
}

// ChangeBlockType converts a block to another type. The fields of the old
// type are reset. An empty block converted to a to-do gets a placeholder
// content.
func (e *Editor) ChangeBlockType(id string, change TypeChange) {
	block, _ := e.doc.Find(id)
	if block == nil {
		return
	}
	attrs := model.Attrs{model.AttrType: change.Type}
	switch change.Type {
	case model.TypeHeading:
		attrs[model.AttrHeadingLevel] = change.HeadingLevel
	case model.TypeTodo:
		attrs[model.AttrCompleted] = false
		if strings.TrimSpace(e.liveText(block)) == "" {
			attrs[model.AttrContent] = TodoPlaceholder
		}
	}
	e.commit(transform.NewTransform(e.doc).SetAttrs(id, attrs))
	e.menus.BlockType = ""
}

// TodoPlaceholder is the content of an empty block converted to a to-do.
// A block with some text keeps it when converted.
const TodoPlaceholder = "New to-do item"

// UpdateContent replaces the content of a block.
func (e *Editor) UpdateContent(id, content string) {
	block, _ := e.doc.Find(id)
	if block == nil || block.Content == content {
		return
	}
	e.commit(transform.NewTransform(e.doc).SetAttrs(id, model.Attrs{model.AttrContent: content}))
}

// Blur is called by the host when a block loses the focus. The markup of
// the live tree of the block becomes its content.
func (e *Editor) Blur(id string) {
	if e.surface == nil {
		return
	}
	root := e.surface.Root(id)
	if root == nil {
		return
	}
	richtext.Normalize(root)
	e.UpdateContent(id, richtext.Render(root))
}

// ToggleTodo checks or unchecks a to-do.
func (e *Editor) ToggleTodo(id string) {
	block, _ := e.doc.Find(id)
	if block == nil || block.Type != model.TypeTodo {
		return
	}
	e.commit(transform.NewTransform(e.doc).SetAttrs(id, model.Attrs{model.AttrCompleted: !block.Completed}))
}

// Indent indents a to-do, when its predecessor allows it.
func (e *Editor) Indent(id string) {
	if res := Dispatch(e.doc, KeyEvent{Key: KeyTab, BlockID: id}); res.Transform != nil {
		e.commit(res.Transform)
	}
}

// Outdent decreases the indentation of a to-do.
func (e *Editor) Outdent(id string) {
	if !list.CanOutdent(e.doc, id) {
		return
	}
	block, _ := e.doc.Find(id)
	e.commit(transform.NewTransform(e.doc).SetAttrs(id, model.Attrs{model.AttrIndentation: block.Indentation - 1}))
}
