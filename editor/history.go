package editor

import (
	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/transform"
	"go.uber.org/zap"
)

// An event of the history: the steps of a change, and the steps undoing it.
type event struct {
	steps    []transform.Step
	inverted []transform.Step
}

type history struct {
	done   []event
	undone []event
	limit  int
}

// contentStep returns the step when the change only updates the content
// of one block.
func contentStep(steps []transform.Step) *transform.SetAttrsStep {
	if len(steps) != 1 {
		return nil
	}
	if s, ok := steps[0].(*transform.SetAttrsStep); ok && s.ContentOnly() {
		return s
	}
	return nil
}

// record adds a change to the history. Consecutive content updates of the
// same block are merged in a single event.
func (h *history) record(tr *transform.Transform) {
	h.undone = nil
	steps := tr.Steps()
	if n := len(h.done); n > 0 {
		last := &h.done[n-1]
		prev, next := contentStep(last.steps), contentStep(steps)
		if prev != nil && next != nil {
			if merged, ok := prev.Merge(next); ok {
				last.steps = []transform.Step{merged}
				return
			}
		}
	}
	h.done = append(h.done, event{steps: steps, inverted: tr.Inverted()})
	if h.limit > 0 && len(h.done) > h.limit {
		h.done = h.done[len(h.done)-h.limit:]
	}
}

// CanUndo tells if there is a change to undo.
func (e *Editor) CanUndo() bool {
	return len(e.history.done) > 0
}

// CanRedo tells if there is an undone change to redo.
func (e *Editor) CanRedo() bool {
	return len(e.history.undone) > 0
}

// Undo reverts the last change.
func (e *Editor) Undo() bool {
	h := e.history
	n := len(h.done)
	if n == 0 {
		return false
	}
	ev := h.done[n-1]
	h.done = h.done[:n-1]
	h.undone = append(h.undone, ev)
	e.setDoc(e.replay(ev.inverted))
	return true
}

// Redo applies again the last undone change.
func (e *Editor) Redo() bool {
	h := e.history
	n := len(h.undone)
	if n == 0 {
		return false
	}
	ev := h.undone[n-1]
	h.undone = h.undone[:n-1]
	h.done = append(h.done, ev)
	e.setDoc(e.replay(ev.steps))
	return true
}

func (e *Editor) replay(steps []transform.Step) *model.Document {
	tr := transform.NewTransform(e.doc)
	for _, step := range steps {
		if result := tr.MaybeStep(step); result.Failed != "" {
			e.logger.Debug("history step skipped", zap.Any("step", step.ToJSON()), zap.String("reason", result.Failed))
		}
	}
	return tr.Doc()
}
