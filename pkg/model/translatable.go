package model

import "strings"

// Translatable is a maximal span of user-facing text within a body.
// Parent/StartIndex are a back-reference that exists only so the
// translator (pkg/translate) can splice a
// replacement into the exact spot this span occupied in a *cloned* Dialogue,
// and are never populated for translation-map entries (which are never part
// of a live graph). The fields are exported, so they are also visible to
// callers of pkg/translate's ExtractTranslatables.
type Translatable struct {
	Parent     *Body
	StartIndex int
	Segments   []Segment
}

// Canonical returns the concatenation of the translatable's segments'
// textual forms — the string used for equality, hashing, and translation
// lookup.
func (t *Translatable) Canonical() string {
	var b strings.Builder
	for _, s := range t.Segments {
		b.WriteString(s.Emit())
	}
	return b.String()
}

// Gender qualifies speaker/addressee context for translation variant
// selection.
type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
)

func (g Gender) String() string {
	if g == GenderFemale {
		return "female"
	}
	return "male"
}

// Well-known context labels.
const (
	ContextUser           = "_user"
	ContextMaleSpeaker    = "male_speaker"
	ContextFemaleSpeaker  = "female_speaker"
	ContextMaleAddressee  = "male_addressee"
	ContextFemaleAddressee = "female_addressee"
)

// ContextTranslation pairs a set of context labels with the Translatable it
// selects.
type ContextTranslation struct {
	Context      map[string]struct{}
	Translation  *Translatable
}

// HasContext reports whether label is one of this translation's context
// labels.
func (c *ContextTranslation) HasContext(label string) bool {
	_, ok := c.Context[label]
	return ok
}

// TranslationContext carries the gender information needed to pick between
// gendered translation variants. A nil *Gender means "not
// specified", which defaults to MALE.
type TranslationContext struct {
	UserGender         *Gender
	DefaultAgentGender *Gender
	AgentGenders       map[string]Gender
}

// GenderOf returns the gender to use for name, which may be an NPC speaker
// name or ContextUser ("_user") for the player. NPC lookups fall back to
// DefaultAgentGender and then MALE.
func (tc *TranslationContext) GenderOf(name string) Gender {
	if name == ContextUser {
		return tc.UserGenderOrDefault()
	}
	if tc.AgentGenders != nil {
		if g, ok := tc.AgentGenders[name]; ok {
			return g
		}
	}
	if tc.DefaultAgentGender != nil {
		return *tc.DefaultAgentGender
	}
	return GenderMale
}

// UserGenderOrDefault returns the configured user gender, defaulting to
// MALE.
func (tc *TranslationContext) UserGenderOrDefault() Gender {
	if tc.UserGender != nil {
		return *tc.UserGender
	}
	return GenderMale
}
