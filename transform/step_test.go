package transform

import (
	"testing"

	"github.com/cozy/blockedit/model"
	"github.com/cozy/blockedit/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doc  = builder.Doc
	p    = builder.P
	h1   = builder.H1
	todo = builder.Todo
)

type id = builder.ID

func mkStep(val string) Step {
	switch val {
	case "type:heading":
		return NewSetAttrsStep("1", model.Attrs{model.AttrType: "heading"})
	case "indent":
		return NewSetAttrsStep("1", model.Attrs{model.AttrIndentation: 1})
	case "move:0", "move:2":
		return NewMoveStep("1", int(val[5]-'0'))
	case "move2:0":
		return NewMoveStep("2", 0)
	case "delete":
		return NewDeleteStep("1")
	default:
		return NewSetAttrsStep("1", model.Attrs{model.AttrContent: val})
	}
}

func TestStepMerge(t *testing.T) {
	testDoc := doc(todo("foo"), p("bar"), p("baz"))

	yes := func(val1, val2 string) {
		step1 := mkStep(val1)
		step2 := mkStep(val2)
		merged, ok := step1.Merge(step2)
		if assert.True(t, ok) {
			applied1 := step1.Apply(testDoc).Doc
			applied2 := step2.Apply(applied1).Doc
			assert.True(t, merged.Apply(testDoc).Doc.Eq(applied2))
		}
	}

	no := func(val1, val2 string) {
		step1 := mkStep(val1)
		step2 := mkStep(val2)
		_, ok := step1.Merge(step2)
		assert.False(t, ok)
	}

	// merges typing changes
	yes("a", "ab")

	// merges content and indentation
	yes("a", "indent")

	// doesn't merge type changes
	no("type:heading", "a")
	no("a", "type:heading")

	// merges moves of the same block
	yes("move:2", "move:0")

	// doesn't merge moves of different blocks
	no("move:2", "move2:0")

	// doesn't merge deletions
	no("delete", "delete")

	// doesn't merge different kinds of steps
	no("a", "move:2")
}

func TestStepInvert(t *testing.T) {
	testDoc := doc(todo("foo", builder.Indent(1)), h1("bar"), p("baz"))

	invert := func(step Step) {
		result := step.Apply(testDoc)
		require.Empty(t, result.Failed)
		inverted := step.Invert(testDoc).Apply(result.Doc)
		require.Empty(t, inverted.Failed)
		assert.True(t, inverted.Doc.Eq(testDoc), "%s != %s", inverted.Doc, testDoc)
	}

	// restores the content
	invert(NewSetAttrsStep("2", model.Attrs{model.AttrContent: "<b>bar</b>"}))

	// restores the type and its fields
	invert(NewSetAttrsStep("1", model.Attrs{model.AttrType: "text"}))
	invert(NewSetAttrsStep("2", model.Attrs{model.AttrType: "todo"}))

	// restores a deleted block at its place
	invert(NewDeleteStep("2"))

	// removes an inserted block
	invert(NewInsertStep(1, p("new", id("new"))))

	// moves a block back
	invert(NewMoveStep("1", 2))
	invert(NewMoveStep("3", 0))
}

func TestStepFail(t *testing.T) {
	testDoc := doc(p("a"))

	// fails on unknown ids
	assert.NotEmpty(t, NewSetAttrsStep("x", model.Attrs{}).Apply(testDoc).Failed)
	assert.NotEmpty(t, NewDeleteStep("x").Apply(testDoc).Failed)
	assert.NotEmpty(t, NewMoveStep("x", 0).Apply(testDoc).Failed)

	// fails on duplicate ids
	assert.NotEmpty(t, NewInsertStep(0, p("b", id("1"))).Apply(testDoc).Failed)

	// fails out of range
	assert.NotEmpty(t, NewInsertStep(2, p("b", id("b"))).Apply(testDoc).Failed)
	assert.NotEmpty(t, NewMoveStep("1", 1).Apply(testDoc).Failed)
}

func TestStepJSON(t *testing.T) {
	testDoc := doc(todo("foo", builder.Indent(1), builder.Checked), p("bar"))

	roundtrip := func(step Step) {
		back, err := StepFromJSON(step.ToJSON())
		require.NoError(t, err)
		expected := step.Apply(testDoc)
		actual := back.Apply(testDoc)
		assert.Equal(t, expected.Failed, actual.Failed)
		if expected.Doc != nil {
			assert.True(t, expected.Doc.Eq(actual.Doc))
		}
	}

	roundtrip(NewInsertStep(1, todo("new", id("new"), builder.Indent(2))))
	roundtrip(NewDeleteStep("1"))
	roundtrip(NewSetAttrsStep("2", model.Attrs{model.AttrType: model.TypeHeading, model.AttrHeadingLevel: 2}))
	roundtrip(NewMoveStep("2", 0))

	// refuses unknown step types
	_, err := StepFromJSON(map[string]interface{}{"stepType": "replaceAround"})
	assert.ErrorIs(t, err, ErrInvalidStep)

	// refuses steps without ids
	_, err = StepFromJSON(map[string]interface{}{"stepType": "delete"})
	assert.ErrorIs(t, err, ErrInvalidStep)

	// reads numbers decoded from JSON
	step, err := StepFromJSON(map[string]interface{}{"stepType": "move", "id": "1", "to": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, NewMoveStep("1", 1), step)
}
