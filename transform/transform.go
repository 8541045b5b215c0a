package transform

import (
	"errors"

	"github.com/cozy/blockedit/model"
)

// Transform is an abstraction for building up and tracking an array of
// steps. Helpers like InsertBelow or SetAttrs do not fail: a step that
// cannot be applied is skipped, and its reason is kept in Failures.
type Transform struct {
	// The steps in this transform.
	steps []Step
	// The documents before each of the steps.
	docs []*model.Document
	// The current document (the result of applying the steps in the
	// transform).
	doc *model.Document
	// Reasons of the steps that were skipped.
	failures []string
}

// NewTransform creates a transform that starts with the given document.
func NewTransform(doc *model.Document) *Transform {
	return &Transform{doc: doc}
}

// Doc returns the current document.
func (t *Transform) Doc() *model.Document {
	return t.doc
}

// Before returns the starting document.
func (t *Transform) Before() *model.Document {
	if len(t.docs) > 0 {
		return t.docs[0]
	}
	return t.doc
}

// Steps returns the steps of this transform.
func (t *Transform) Steps() []Step {
	return t.steps
}

// Docs returns the documents before each of the steps.
func (t *Transform) Docs() []*model.Document {
	return t.docs
}

// Failures returns the reasons of the skipped steps.
func (t *Transform) Failures() []string {
	return t.failures
}

// DocChanged is true when the document has been changed (when there are any
// steps).
func (t *Transform) DocChanged() bool {
	return len(t.steps) > 0
}

// Step applies a new step in this transform, saving the result. Returns an
// error when the step fails.
func (t *Transform) Step(step Step) error {
	result := t.MaybeStep(step)
	if result.Failed != "" {
		return errors.New(result.Failed)
	}
	return nil
}

// MaybeStep tries to apply a step in this transform, ignoring it if it fails.
// Returns the step result.
func (t *Transform) MaybeStep(step Step) StepResult {
	result := step.Apply(t.doc)
	if result.Failed == "" {
		t.AddStep(step, result.Doc)
	}
	return result
}

// AddStep adds a step that has already been applied.
func (t *Transform) AddStep(step Step, doc *model.Document) {
	t.docs = append(t.docs, t.doc)
	t.steps = append(t.steps, step)
	t.doc = doc
}

// Inverted returns the steps undoing this transform, in the order they
// should be applied.
func (t *Transform) Inverted() []Step {
	inverted := make([]Step, 0, len(t.steps))
	for i := len(t.steps) - 1; i >= 0; i-- {
		inverted = append(inverted, t.steps[i].Invert(t.docs[i]))
	}
	return inverted
}

func (t *Transform) try(step Step) *Transform {
	if result := t.MaybeStep(step); result.Failed != "" {
		t.failures = append(t.failures, result.Failed)
	}
	return t
}

// Insert inserts a block at the given index.
func (t *Transform) Insert(index int, block *model.Block) *Transform {
	return t.try(NewInsertStep(index, block))
}

// InsertBelow inserts a block right after the block with the given id.
func (t *Transform) InsertBelow(id string, block *model.Block) *Transform {
	index := t.doc.IndexOf(id)
	if index < 0 {
		t.failures = append(t.failures, "No block with id "+id)
		return t
	}
	return t.Insert(index+1, block)
}

// Delete removes the block with the given id.
func (t *Transform) Delete(id string) *Transform {
	return t.try(NewDeleteStep(id))
}

// SetAttrs changes the attributes of the block with the given id.
func (t *Transform) SetAttrs(id string, attrs model.Attrs) *Transform {
	return t.try(NewSetAttrsStep(id, attrs))
}

// Move moves the block with the given id to the index.
func (t *Transform) Move(id string, to int) *Transform {
	return t.try(NewMoveStep(id, to))
}
