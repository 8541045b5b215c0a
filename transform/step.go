// Package transform implements document transforms, which are used by the
// editor to treat changes as first-class values, which can be logged,
// inverted for undo, and reasoned about.
package transform

import (
	"errors"
	"fmt"

	"github.com/cozy/blockedit/model"
)

// Step objects represent an atomic change. Steps address blocks by id, so a
// step can be applied to any document containing the blocks it refers to.
type Step interface {
	// Applies this step to the given document, returning a result
	// object that either indicates failure, if the step can not be
	// applied to this document, or indicates success by containing a
	// transformed document.
	Apply(doc *model.Document) StepResult

	// Invert creates an inverted version of this step. Needs the document as
	// it was before the step as argument.
	Invert(doc *model.Document) Step

	// Merge tries to merge this step with another one, to be applied directly
	// after it. Returns the merged step when possible, false if the steps
	// can't be merged.
	Merge(other Step) (Step, bool)

	// ToJSON creates a JSON-serializeable representation of this step.
	ToJSON() map[string]interface{}
}

// StepResult is the result of applying a step. Contains either a new document
// or a failure value.
type StepResult struct {
	// The transformed document.
	Doc *model.Document
	// Text providing information about a failed step.
	Failed string
}

// OK creates a successful step result.
func OK(doc *model.Document) StepResult {
	return StepResult{Doc: doc}
}

// Fail creates a failed step result.
func Fail(message string) StepResult {
	return StepResult{Failed: message}
}

// ErrInvalidStep is returned when a JSON representation cannot be turned
// into a step.
var ErrInvalidStep = errors.New("invalid step")

var stepsByID = map[string]func(obj map[string]interface{}) (Step, error){
	"insert":   InsertStepFromJSON,
	"delete":   DeleteStepFromJSON,
	"setAttrs": SetAttrsStepFromJSON,
	"move":     MoveStepFromJSON,
}

// StepFromJSON deserializes a step from its JSON representation.
func StepFromJSON(obj map[string]interface{}) (Step, error) {
	typ, _ := obj["stepType"].(string)
	fn, ok := stepsByID[typ]
	if !ok {
		return nil, fmt.Errorf("%w: no step type %q defined", ErrInvalidStep, typ)
	}
	return fn(obj)
}

func intFromJSON(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func blockToJSON(b *model.Block) map[string]interface{} {
	obj := map[string]interface{}{"id": b.ID}
	for k, v := range b.Attrs() {
		obj[k] = v
	}
	return obj
}

func blockFromJSON(obj map[string]interface{}) (*model.Block, error) {
	id, _ := obj["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: block without id", ErrInvalidStep)
	}
	attrs := model.Attrs{}
	for k, v := range obj {
		if k != "id" {
			attrs[k] = v
		}
	}
	return (&model.Block{ID: id}).WithAttrs(attrs), nil
}
