package model_test

import (
	"testing"

	"github.com/dialoguebranch/dlb-core-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDialogueRefRelative(t *testing.T) {
	abs, err := model.ResolveDialogueRef("zone1/npc", "../shared/intro")
	require.NoError(t, err)
	assert.Equal(t, "shared/intro", abs)
}

func TestResolveDialogueRefAbsolute(t *testing.T) {
	abs, err := model.ResolveDialogueRef("zone1/npc", "/shared/intro")
	require.NoError(t, err)
	assert.Equal(t, "shared/intro", abs)
}

func TestResolveDialogueRefBareName(t *testing.T) {
	abs, err := model.ResolveDialogueRef("zone1/npc", "sibling")
	require.NoError(t, err)
	assert.Equal(t, "zone1/sibling", abs)
}

func TestResolveDialogueRefDotSlash(t *testing.T) {
	abs, err := model.ResolveDialogueRef("zone1/npc", "./sibling")
	require.NoError(t, err)
	assert.Equal(t, "zone1/sibling", abs)
}

func TestResolveDialogueRefAscendToRootIsAllowed(t *testing.T) {
	abs, err := model.ResolveDialogueRef("zone1/npc", "../root")
	require.NoError(t, err)
	assert.Equal(t, "root", abs)
}

func TestResolveDialogueRefAscendAboveRootIsError(t *testing.T) {
	_, err := model.ResolveDialogueRef("npc", "../escaped")
	require.Error(t, err)
}

func TestResolveDialogueRefEmptyNameIsError(t *testing.T) {
	_, err := model.ResolveDialogueRef("zone1/npc", "..")
	require.Error(t, err)
}

func TestResolveDialogueRefEmptyRefIsError(t *testing.T) {
	_, err := model.ResolveDialogueRef("zone1/npc", "")
	require.Error(t, err)
}

func TestNewExternalPointerStable(t *testing.T) {
	p1, err := model.NewExternalPointer("zone1/npc", "Start", "../shared/intro", "Start")
	require.NoError(t, err)
	p2, err := model.NewExternalPointer("zone1/npc", "Start", "../shared/intro", "Start")
	require.NoError(t, err)
	assert.Equal(t, p1.AbsoluteTargetDialogue, p2.AbsoluteTargetDialogue)
}
