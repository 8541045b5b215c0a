package transform

import (
	"fmt"

	"github.com/cozy/blockedit/model"
)

// InsertStep inserts a new block at the given index of the document.
type InsertStep struct {
	Index int
	Block *model.Block
}

// NewInsertStep is the constructor of InsertStep.
func NewInsertStep(index int, block *model.Block) *InsertStep {
	return &InsertStep{Index: index, Block: block}
}

// Apply is a method of the Step interface.
func (s *InsertStep) Apply(doc *model.Document) StepResult {
	if s.Block == nil {
		return Fail("No block to insert")
	}
	if s.Index < 0 || s.Index > doc.Len() {
		return Fail(fmt.Sprintf("Index %d out of range", s.Index))
	}
	inserted, err := doc.Insert(s.Index, s.Block)
	if err != nil {
		return Fail(err.Error())
	}
	return OK(inserted)
}

// Invert is a method of the Step interface.
func (s *InsertStep) Invert(doc *model.Document) Step {
	return NewDeleteStep(s.Block.ID)
}

// Merge is a method of the Step interface.
func (s *InsertStep) Merge(other Step) (Step, bool) {
	return nil, false
}

// ToJSON is a method of the Step interface.
func (s *InsertStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "insert",
		"index":    s.Index,
		"block":    blockToJSON(s.Block),
	}
}

// InsertStepFromJSON builds an InsertStep from a JSON representation.
func InsertStepFromJSON(obj map[string]interface{}) (Step, error) {
	index, ok := intFromJSON(obj["index"])
	if !ok {
		return nil, fmt.Errorf("%w: invalid input for InsertStep.fromJSON", ErrInvalidStep)
	}
	raw, _ := obj["block"].(map[string]interface{})
	block, err := blockFromJSON(raw)
	if err != nil {
		return nil, err
	}
	return NewInsertStep(index, block), nil
}

// DeleteStep removes a block from the document.
type DeleteStep struct {
	ID string
}

// NewDeleteStep is the constructor of DeleteStep.
func NewDeleteStep(id string) *DeleteStep {
	return &DeleteStep{ID: id}
}

// Apply is a method of the Step interface.
func (s *DeleteStep) Apply(doc *model.Document) StepResult {
	removed, ok := doc.Remove(s.ID)
	if !ok {
		return Fail("No block with id " + s.ID)
	}
	return OK(removed)
}

// Invert is a method of the Step interface. The inverted step puts the
// block back at its index.
func (s *DeleteStep) Invert(doc *model.Document) Step {
	block, index := doc.Find(s.ID)
	return NewInsertStep(index, block)
}

// Merge is a method of the Step interface.
func (s *DeleteStep) Merge(other Step) (Step, bool) {
	return nil, false
}

// ToJSON is a method of the Step interface.
func (s *DeleteStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "delete",
		"id":       s.ID,
	}
}

// DeleteStepFromJSON builds a DeleteStep from a JSON representation.
func DeleteStepFromJSON(obj map[string]interface{}) (Step, error) {
	id, _ := obj["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: invalid input for DeleteStep.fromJSON", ErrInvalidStep)
	}
	return NewDeleteStep(id), nil
}

var (
	_ Step = &InsertStep{}
	_ Step = &DeleteStep{}
)
