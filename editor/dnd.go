package editor

import (
	"github.com/cozy/blockedit/transform"
	"go.uber.org/zap"
)

// DragStart remembers the block being dragged.
func (e *Editor) DragStart(id string) {
	e.dragged = id
}

// Dragged returns the id of the block being dragged, or "".
func (e *Editor) Dragged() string {
	return e.dragged
}

// DragOver tells if a block can be dropped. Every block accepts the drop.
func (e *Editor) DragOver() bool {
	return true
}

// Drop moves the dragged block to the position of the target block. Nothing
// happens without a drag in progress or when a block is missing.
func (e *Editor) Drop(targetID string) {
	if e.dragged == "" {
		return
	}
	from := e.doc.IndexOf(e.dragged)
	to := e.doc.IndexOf(targetID)
	if from < 0 || to < 0 {
		e.logger.Debug("drop ignored", zap.String("block_id", e.dragged), zap.String("target", targetID))
		return
	}
	dragged := e.dragged
	e.commit(transform.NewTransform(e.doc).Move(dragged, to))
	e.dragged = ""
}
