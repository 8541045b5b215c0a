package editor

import "go.uber.org/zap"

// The focus moves in two phases: a change of the document queues a focus
// request, as the block to focus may not be rendered yet, and the host calls
// AfterRender once it has rendered the new document.

func (e *Editor) requestFocus(req FocusRequest) {
	e.focusQueue = append(e.focusQueue, req)
}

// PendingFocus returns the focus requests waiting for the next render.
func (e *Editor) PendingFocus() []FocusRequest {
	return e.focusQueue
}

// AfterRender performs the queued focus requests. A request for a block that
// is not mounted is dropped.
func (e *Editor) AfterRender() {
	queue := e.focusQueue
	e.focusQueue = nil
	if e.surface == nil {
		return
	}
	for _, req := range queue {
		if !e.surface.Focus(req.BlockID) {
			e.logger.Debug("focus dropped", zap.String("block_id", req.BlockID))
		}
	}
}
