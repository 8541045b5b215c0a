package transform

import (
	"testing"

	"github.com/cozy/blockedit/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTwice(t *testing.T) {
	testDoc := doc(p("Numéro"))

	step1 := NewInsertStep(1, p("un", id("a")))
	result := step1.Apply(testDoc)
	require.Empty(t, result.Failed)
	assert.Equal(t, `doc(text("Numéro"), text("un"))`, result.Doc.String())

	step2 := NewInsertStep(1, h1("deux", id("b")))
	result = step2.Apply(result.Doc)
	require.Empty(t, result.Failed)
	assert.Equal(t, `doc(text("Numéro"), h1("deux"), text("un"))`, result.Doc.String())

	// the original document is untouched
	assert.Equal(t, 1, testDoc.Len())
}

func TestDeleteKeepsOrder(t *testing.T) {
	testDoc := doc(p("a"), p("b"), p("c"))
	result := NewDeleteStep("2").Apply(testDoc)
	require.Empty(t, result.Failed)
	assert.Equal(t, `doc(text("a"), text("c"))`, result.Doc.String())
}

func TestInsertNormalizes(t *testing.T) {
	block := &model.Block{ID: "x", Type: model.TypeText, Indentation: 3}
	result := NewInsertStep(0, block).Apply(doc(p("a")))
	require.Empty(t, result.Failed)
	assert.Equal(t, 0, result.Doc.Block(0).Indentation)
}
