package script_test

import (
	"testing"

	"github.com/dialoguebranch/dlb-core-go/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScriptSingleNode(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\nHello traveler.\n===\n"
	res := script.ParseScript(src, "zone1/npc", "en")
	require.Empty(t, res.Errors)
	require.Len(t, res.Dialogue.Nodes, 1)
	assert.Equal(t, "Start", res.Dialogue.Nodes[0].Header.Title)
	assert.Equal(t, "Guard", res.Dialogue.Nodes[0].Header.Speaker)
}

func TestParseScriptMultipleNodes(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\n[[Go on|Second]]\n===\ntitle: Second\nspeaker: Guard\n---\nThe end.\n"
	res := script.ParseScript(src, "zone1/npc", "en")
	require.Empty(t, res.Errors)
	require.Len(t, res.Dialogue.Nodes, 2)
	require.NoError(t, res.Dialogue.Finalize())
}

func TestParseScriptMissingTitleIsError(t *testing.T) {
	src := "speaker: Guard\n---\nHi\n===\n"
	res := script.ParseScript(src, "zone1/npc", "en")
	require.NotEmpty(t, res.Errors)
	require.Empty(t, res.Dialogue.Nodes)
}

func TestParseScriptDuplicateHeaderKeyIsError(t *testing.T) {
	src := "title: Start\ntitle: Start\nspeaker: Guard\n---\nHi\n===\n"
	res := script.ParseScript(src, "zone1/npc", "en")
	require.NotEmpty(t, res.Errors)
}

func TestParseScriptMissingSeparatorIsRecovered(t *testing.T) {
	src := "title: Broken\nspeaker: Guard\nno separator here\n===\ntitle: Start\nspeaker: Guard\n---\nHi\n===\n"
	res := script.ParseScript(src, "zone1/npc", "en")
	require.NotEmpty(t, res.Errors)
	require.Len(t, res.Dialogue.Nodes, 1)
	assert.Equal(t, "Start", res.Dialogue.Nodes[0].Header.Title)
}

func TestEmitRoundTrip(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\nHello.\n===\n"
	res := script.ParseScript(src, "zone1/npc", "en")
	require.Empty(t, res.Errors)
	out := script.Emit(res.Dialogue)
	reparsed := script.ParseScript(out, "zone1/npc", "en")
	require.Empty(t, reparsed.Errors)
	require.Len(t, reparsed.Dialogue.Nodes, 1)
	assert.Equal(t, "Start", reparsed.Dialogue.Nodes[0].Header.Title)
}
