package transform

import (
	"fmt"

	"github.com/cozy/blockedit/model"
)

// MoveStep moves a block so that it ends at the given index. The other
// blocks keep their relative order.
type MoveStep struct {
	ID string
	To int
}

// NewMoveStep is the constructor of MoveStep.
func NewMoveStep(id string, to int) *MoveStep {
	return &MoveStep{ID: id, To: to}
}

// Apply is a method of the Step interface.
func (s *MoveStep) Apply(doc *model.Document) StepResult {
	moved, ok := doc.Move(s.ID, s.To)
	if !ok {
		return Fail(fmt.Sprintf("Cannot move %s to %d", s.ID, s.To))
	}
	return OK(moved)
}

// Invert is a method of the Step interface.
func (s *MoveStep) Invert(doc *model.Document) Step {
	return NewMoveStep(s.ID, doc.IndexOf(s.ID))
}

// Merge is a method of the Step interface. Two moves of the same block are
// the same as the last one.
func (s *MoveStep) Merge(other Step) (Step, bool) {
	next, ok := other.(*MoveStep)
	if !ok || next.ID != s.ID {
		return nil, false
	}
	return NewMoveStep(s.ID, next.To), true
}

// ToJSON is a method of the Step interface.
func (s *MoveStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "move",
		"id":       s.ID,
		"to":       s.To,
	}
}

// MoveStepFromJSON builds a MoveStep from a JSON representation.
func MoveStepFromJSON(obj map[string]interface{}) (Step, error) {
	id, _ := obj["id"].(string)
	to, ok := intFromJSON(obj["to"])
	if id == "" || !ok {
		return nil, fmt.Errorf("%w: invalid input for MoveStep.fromJSON", ErrInvalidStep)
	}
	return NewMoveStep(id, to), nil
}

var _ Step = &MoveStep{}
