package model_test

import (
	"testing"

	"github.com/dialoguebranch/dlb-core-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(title, speaker string) *model.Node {
	h := model.NewHeader()
	h.Title = title
	h.Speaker = speaker
	return &model.Node{Header: h, Body: model.NewBody()}
}

func TestDialogueRequiresExactlyOneStart(t *testing.T) {
	d := model.NewDialogue("zone1/npc", "en")
	require.NoError(t, d.AddNode(newTestNode("N1", "S")))
	err := d.Finalize()
	assert.Error(t, err)

	d2 := model.NewDialogue("zone1/npc", "en")
	require.NoError(t, d2.AddNode(newTestNode("start", "S")))
	require.NoError(t, d2.Finalize())
}

func TestDialogueRejectsDuplicateTitles(t *testing.T) {
	d := model.NewDialogue("zone1/npc", "en")
	require.NoError(t, d.AddNode(newTestNode("Start", "S")))
	err := d.AddNode(newTestNode("Start", "S"))
	assert.Error(t, err)
}

func TestDialogueCloneIsIndependent(t *testing.T) {
	d := model.NewDialogue("zone1/npc", "en")
	n := newTestNode("Start", "S")
	n.Body.AppendSegment(&model.TextSegment{Text: model.VariableString{Parts: []model.VariablePart{{Text: "Hello"}}}})
	require.NoError(t, d.AddNode(n))

	clone := d.Clone()
	clone.Nodes[0].Body.Segments[0].(*model.TextSegment).Text.Parts[0].Text = "Changed"

	assert.Equal(t, "Hello", d.Nodes[0].Body.Segments[0].(*model.TextSegment).Text.String())
	assert.Equal(t, "Changed", clone.Nodes[0].Body.Segments[0].(*model.TextSegment).Text.String())
}
