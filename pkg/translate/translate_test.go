package translate_test

import (
	"testing"

	"github.com/dialoguebranch/dlb-core-go/pkg/model"
	"github.com/dialoguebranch/dlb-core-go/pkg/script"
	"github.com/dialoguebranch/dlb-core-go/pkg/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDialogue(t *testing.T, src string) *model.Dialogue {
	t.Helper()
	res := script.ParseScript(src, "zone1/npc", "en")
	require.Empty(t, res.Errors)
	return res.Dialogue
}

func TestExtractTranslatablesSkipsCommands(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\nHello <<set $x = 1>> traveler.\n===\n"
	d := parseDialogue(t, src)
	runs := translate.ExtractTranslatables(d)
	require.Len(t, runs, 2)
	assert.Equal(t, "Hello ", runs[0].Canonical())
	assert.Equal(t, " traveler.", runs[1].Canonical())
	assert.Equal(t, "Guard", runs[0].Speaker)
	assert.Equal(t, model.ContextUser, runs[0].Addressee)
}

func TestExtractTranslatablesRecursesIntoIf(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\n<<if $trust > 5>>Friend.<<else>>Stranger.<<endif>>\n===\n"
	d := parseDialogue(t, src)
	runs := translate.ExtractTranslatables(d)
	require.Len(t, runs, 2)
}

func TestExtractTranslatablesSwapsRolesForReplies(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\nHello.[[Bye|Start]]\n===\n"
	d := parseDialogue(t, src)
	runs := translate.ExtractTranslatables(d)
	require.Len(t, runs, 2)
	assert.Equal(t, "Guard", runs[0].Speaker)
	assert.Equal(t, model.ContextUser, runs[0].Addressee)
	assert.Equal(t, model.ContextUser, runs[1].Speaker)
	assert.Equal(t, "Guard", runs[1].Addressee)
}

func TestExtractTranslatablesYieldsNothingForSetOnlyBody(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\n<<set $x = 1>>\n===\n"
	d := parseDialogue(t, src)
	runs := translate.ExtractTranslatables(d)
	assert.Empty(t, runs)
}

func TestParseTranslationFileAndTranslate(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\nHello traveler.\n===\n"
	d := parseDialogue(t, src)

	tfile := `{"Hello traveler.":"Hallo reiziger."}`
	tmap, errs, warnings := translate.ParseTranslationFile(tfile, "nl.json", map[string]bool{"input": true})
	require.Empty(t, errs)
	require.Empty(t, warnings)
	require.True(t, tmap.Has("Hello traveler."))

	tr := translate.NewTranslator(tmap, model.TranslationContext{})
	translated := tr.Translate(d)

	ts := translated.Nodes[0].Body.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Hallo reiziger.", ts.Text.String())
	// Source dialogue is untouched.
	orig := d.Nodes[0].Body.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Hello traveler.", orig.Text.String())
}

func TestTranslateLeavesUnmatchedTextUntouched(t *testing.T) {
	// §4.8 step 2 / §7: a lookup miss is silent, not an error — the
	// segment is left in the source language so translation can be partial.
	src := "title: Start\nspeaker: Guard\n---\nUntranslated.\n===\n"
	d := parseDialogue(t, src)
	tmap, _, _ := translate.ParseTranslationFile(`{}`, "nl.json", nil)
	tr := translate.NewTranslator(tmap, model.TranslationContext{})
	translated := tr.Translate(d)
	ts := translated.Nodes[0].Body.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Untranslated.", ts.Text.String())
}

func TestTranslationFileWhitelistRejectsSetCommand(t *testing.T) {
	tfile := `{"x":"<<set $y = 1>>hi"}`
	_, errs, _ := translate.ParseTranslationFile(tfile, "nl.json", map[string]bool{"input": true})
	assert.NotEmpty(t, errs)
}

func TestTranslateSelectsGenderedVariant(t *testing.T) {
	src := "title: Start\nspeaker: Queen\n---\nThank you.\n===\n"
	d := parseDialogue(t, src)
	tfile := `{"male_speaker":{"Thank you.":"Dank je."},"female_speaker":{"Thank you.":"Dank je wel, mevrouw."}}`
	tmap, errs, _ := translate.ParseTranslationFile(tfile, "nl.json", map[string]bool{"input": true})
	require.Empty(t, errs)

	female := model.GenderFemale
	ctx := model.TranslationContext{AgentGenders: map[string]model.Gender{"Queen": female}}
	tr := translate.NewTranslator(tmap, ctx)
	translated := tr.Translate(d)
	ts := translated.Nodes[0].Body.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Dank je wel, mevrouw.", ts.Text.String())
}

func TestTranslateSelectsBySpeakerContext(t *testing.T) {
	// §8 scenario 3: the same source text has one translation for the
	// user (a reply statement) and one for a named agent speaker.
	src := "title: Start\nspeaker: Agent\n---\nYes.[[Yes.|Start]]\n===\n"
	d := parseDialogue(t, src)
	tfile := `{"_user":{"Yes.":"Sí."},"Agent":{"Yes.":"Si, señor."}}`
	tmap, errs, _ := translate.ParseTranslationFile(tfile, "es.json", map[string]bool{"input": true})
	require.Empty(t, errs)

	tr := translate.NewTranslator(tmap, model.TranslationContext{})
	translated := tr.Translate(d)

	nodeText := translated.Nodes[0].Body.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Si, señor.", nodeText.Text.String())
	replyText := translated.Nodes[0].Body.Replies[0].Statement.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Sí.", replyText.Text.String())
}

func TestTranslateDuplicateSourceInSameContextIsAnError(t *testing.T) {
	tfile := `{"greeting":{"Hi":"Hoi"},"greeting2":{"Hi":"Hallo"}}`
	_, errs, _ := translate.ParseTranslationFile(tfile, "nl.json", nil)
	assert.Empty(t, errs) // different contexts, not a duplicate

	dup := `{"Hi":"Hoi","Hi2":"Hallo"}`
	_, errs2, _ := translate.ParseTranslationFile(dup, "nl.json", nil)
	assert.Empty(t, errs2) // distinct source text, not a duplicate either

	same := `{"Hi":"Hoi","Hi":"Hallo"}`
	_, errs3, _ := translate.ParseTranslationFile(same, "nl.json", nil)
	assert.NotEmpty(t, errs3) // same source text in the same (empty) context
}

func TestTranslateNormalizedFallbackMatchesInternalWhitespace(t *testing.T) {
	src := "title: Start\nspeaker: Guard\n---\nHello   traveler.\n===\n"
	d := parseDialogue(t, src)
	tfile := `{"Hello traveler.":"Hallo reiziger."}`
	tmap, errs, _ := translate.ParseTranslationFile(tfile, "nl.json", nil)
	require.Empty(t, errs)

	tr := translate.NewTranslator(tmap, model.TranslationContext{})
	translated := tr.Translate(d)
	ts := translated.Nodes[0].Body.Segments[0].(*model.TextSegment)
	assert.Equal(t, "Hallo reiziger.", ts.Text.String())
}
