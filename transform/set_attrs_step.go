package transform

import (
	"fmt"

	"github.com/cozy/blockedit/model"
)

// SetAttrsStep can be used to change the attributes of a block: its type,
// heading level, completion, indentation or content.
type SetAttrsStep struct {
	ID    string
	Attrs model.Attrs
}

// NewSetAttrsStep is a constructor for SetAttrsStep
func NewSetAttrsStep(id string, attrs model.Attrs) *SetAttrsStep {
	return &SetAttrsStep{ID: id, Attrs: attrs}
}

// Apply is a method of the Step interface.
func (s *SetAttrsStep) Apply(doc *model.Document) StepResult {
	target, _ := doc.Find(s.ID)
	if target == nil {
		return Fail("No block with id " + s.ID)
	}
	replaced, _ := doc.Replace(target.WithAttrs(s.Attrs))
	return OK(replaced)
}

// Invert is a method of the Step interface.
func (s *SetAttrsStep) Invert(doc *model.Document) Step {
	attrs := model.Attrs{}
	if target, _ := doc.Find(s.ID); target != nil {
		attrs = target.Attrs()
	}
	return NewSetAttrsStep(s.ID, attrs)
}

// Merge is a method of the Step interface. Two steps on the same block can
// be merged when none of them changes the type of the block, as a type
// change resets the fields of the previous type.
func (s *SetAttrsStep) Merge(other Step) (Step, bool) {
	next, ok := other.(*SetAttrsStep)
	if !ok || next.ID != s.ID {
		return nil, false
	}
	if _, ok := s.Attrs[model.AttrType]; ok {
		return nil, false
	}
	if _, ok := next.Attrs[model.AttrType]; ok {
		return nil, false
	}
	attrs := model.Attrs{}
	for k, v := range s.Attrs {
		attrs[k] = v
	}
	for k, v := range next.Attrs {
		attrs[k] = v
	}
	return NewSetAttrsStep(s.ID, attrs), true
}

// ContentOnly tells if the step only changes the content of the block.
func (s *SetAttrsStep) ContentOnly() bool {
	_, ok := s.Attrs[model.AttrContent]
	return ok && len(s.Attrs) == 1
}

// ToJSON is a method of the Step interface.
func (s *SetAttrsStep) ToJSON() map[string]interface{} {
	attrs := map[string]interface{}{}
	for k, v := range s.Attrs {
		if t, ok := v.(model.BlockType); ok {
			v = string(t)
		}
		attrs[k] = v
	}
	return map[string]interface{}{
		"stepType": "setAttrs",
		"id":       s.ID,
		"attrs":    attrs,
	}
}

// SetAttrsStepFromJSON builds an SetAttrsStep from a JSON representation.
func SetAttrsStepFromJSON(obj map[string]interface{}) (Step, error) {
	id, _ := obj["id"].(string)
	var attrs map[string]interface{}
	switch a := obj["attrs"].(type) {
	case map[string]interface{}:
		attrs = a
	case model.Attrs:
		attrs = a
	}
	if id == "" || attrs == nil {
		return nil, fmt.Errorf("%w: invalid input for SetAttrsStep.fromJSON", ErrInvalidStep)
	}
	return NewSetAttrsStep(id, model.Attrs(attrs)), nil
}

var _ Step = &SetAttrsStep{}
