package translate

import (
	"strings"

	"github.com/dialoguebranch/dlb-core-go/pkg/logger"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
)

// Translator applies one language's TranslationMap onto a dialogue,
// producing a translated clone. The source dialogue is never mutated:
// every splice happens on a model.Dialogue.Clone.
//
// Two lookup tables are built once at construction, both keyed by the
// trimmed source canonical string: exact and normalized (internal
// whitespace runs collapsed to one space). Both are populated by a single
// left-to-right walk of the TranslationMap's insertion-ordered keys, so
// when two distinct source strings collapse to the same normalized form,
// the later one wins — insertion order decides, never Go's randomized map
// iteration (see DESIGN.md "Open Questions resolved").
type Translator struct {
	Map     *model.TranslationMap
	Context model.TranslationContext
	// Log receives a Debug line for every lookup miss (§7: misses are not
	// errors by design, but still worth a diagnostic trail). Defaults to
	// logger.NewNoOpLogger when left nil by NewTranslator.
	Log logger.Logger

	exact      map[string][]*model.ContextTranslation
	normalized map[string][]*model.ContextTranslation
}

// NewTranslator builds a Translator for one language's installed
// translations, evaluated under the given user/speaker gender context.
func NewTranslator(tmap *model.TranslationMap, ctx model.TranslationContext) *Translator {
	t := &Translator{
		Map:        tmap,
		Context:    ctx,
		Log:        logger.NewNoOpLogger(),
		exact:      make(map[string][]*model.ContextTranslation),
		normalized: make(map[string][]*model.ContextTranslation),
	}
	for _, key := range tmap.Keys() {
		variants, _ := tmap.Get(key)
		trimmed := strings.TrimSpace(key)
		t.exact[trimmed] = variants
		t.normalized[collapseWhitespace(trimmed)] = variants
	}
	return t
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// Translate returns a translated clone of d. Every SourceTranslatable that
// has no matching entry in either table is left untranslated in place
// (§4.8 step 2, §7: lookup misses are silent by design, enabling partial
// translations) — it is merely noted with a Debug log line, never surfaced
// as an error. When entries exist but none matches the current context,
// the context filters fall back to the full list and its first entry is
// used.
func (t *Translator) Translate(d *model.Dialogue) *model.Dialogue {
	clone := d.Clone()

	runs := ExtractTranslatables(clone)
	// Apply splices back-to-front within each body so an earlier
	// StartIndex is never invalidated by a later splice in the same body
	// changing its segment count.
	for i := len(runs) - 1; i >= 0; i-- {
		t.spliceOne(runs[i])
	}
	return clone
}

func (t *Translator) spliceOne(run *SourceTranslatable) {
	canonical := run.Canonical()
	pre, core, post := splitSurroundingWhitespace(canonical)

	variants, ok := t.exact[core]
	if !ok {
		variants, ok = t.normalized[collapseWhitespace(core)]
	}
	if !ok {
		t.Log.Debug("no translation found, leaving source text in place", map[string]interface{}{
			"speaker": run.Speaker, "source": core,
		})
		return
	}

	chosen := t.selectVariant(variants, run.Speaker, run.Addressee)
	if chosen == nil {
		t.Log.Debug("no translation variant matches the current context, leaving source text in place", map[string]interface{}{
			"speaker": run.Speaker, "addressee": run.Addressee, "source": core,
		})
		return
	}

	replacement := make([]model.Segment, 0, len(chosen.Translation.Segments)+2)
	if pre != "" {
		replacement = append(replacement, &model.TextSegment{Text: model.VariableString{Parts: []model.VariablePart{{Text: pre}}}})
	}
	for _, seg := range chosen.Translation.Segments {
		replacement = append(replacement, model.CloneSegment(seg))
	}
	if post != "" {
		replacement = append(replacement, &model.TextSegment{Text: model.VariableString{Parts: []model.VariablePart{{Text: post}}}})
	}
	run.Parent.ReplaceRange(run.StartIndex, len(run.Segments), replacement)
}

// splitSurroundingWhitespace splits s into a leading whitespace run, a
// trimmed core, and a trailing whitespace run, so a splice can preserve
// the exact surrounding whitespace of the text it replaces (§4.8 step 4)
// even though lookup only ever matches on the trimmed core.
func splitSurroundingWhitespace(s string) (pre, core, post string) {
	trimmedLeft := strings.TrimLeft(s, " \t\r\n")
	pre = s[:len(s)-len(trimmedLeft)]
	trimmed := strings.TrimRight(trimmedLeft, " \t\r\n")
	post = trimmedLeft[len(trimmed):]
	return pre, trimmed, post
}

// selectVariant applies §4.8 step 3: filter by speaker context (preserving
// the full list if that would empty it), then by gender context (same
// fallback), then take the first surviving candidate.
func (t *Translator) selectVariant(variants []*model.ContextTranslation, speaker, addressee string) *model.ContextTranslation {
	bySpeaker := filterByContextLabel(variants, speaker)

	speakerGender := t.Context.GenderOf(speaker)
	addresseeGender := t.Context.GenderOf(addressee)
	byGender := filterByGender(bySpeaker, speakerGender, addresseeGender)

	if len(byGender) == 0 {
		return nil
	}
	return byGender[0]
}

// filterByContextLabel keeps candidates with no context constraint at all,
// or whose context explicitly names label (the current speaker identity,
// an NPC name or model.ContextUser). If that would drop every candidate,
// the unfiltered list is returned instead (§4.8 step 3).
func filterByContextLabel(variants []*model.ContextTranslation, label string) []*model.ContextTranslation {
	var kept []*model.ContextTranslation
	for _, v := range variants {
		if len(v.Context) == 0 || v.HasContext(label) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return variants
	}
	return kept
}

// filterByGender drops any candidate whose context contradicts the gender
// actually in effect for the speaker or addressee, mirroring all four
// combinations named in §4.8. As with the speaker filter, a result that
// would be empty falls back to the unfiltered input.
func filterByGender(variants []*model.ContextTranslation, speakerGender, addresseeGender model.Gender) []*model.ContextTranslation {
	var kept []*model.ContextTranslation
	for _, v := range variants {
		if v.HasContext(model.ContextFemaleSpeaker) && speakerGender == model.GenderMale {
			continue
		}
		if v.HasContext(model.ContextMaleSpeaker) && speakerGender == model.GenderFemale {
			continue
		}
		if v.HasContext(model.ContextFemaleAddressee) && addresseeGender == model.GenderMale {
			continue
		}
		if v.HasContext(model.ContextMaleAddressee) && addresseeGender == model.GenderFemale {
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return variants
	}
	return kept
}
