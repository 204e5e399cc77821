package project_test

import (
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/dialoguebranch/dlb-core-go/internal/config"
	"github.com/dialoguebranch/dlb-core-go/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLoader is an in-memory project.FileLoader used only by tests, so
// linker tests never touch a real filesystem or database.
type memoryLoader struct {
	languageMap  []byte
	dialogues    map[string]map[string]string // language -> path -> source
	translations map[string]map[string]string
}

func newMemoryLoader() *memoryLoader {
	return &memoryLoader{
		dialogues:    map[string]map[string]string{},
		translations: map[string]map[string]string{},
	}
}

func (m *memoryLoader) ListDialogues(lang string) ([]string, error) {
	var out []string
	for p := range m.dialogues[lang] {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryLoader) ReadDialogue(lang, path string) (string, error) {
	src, ok := m.dialogues[lang][path]
	if !ok {
		return "", fmt.Errorf("no such dialogue: %s/%s", lang, path)
	}
	return src, nil
}

func (m *memoryLoader) ListTranslations(lang string) ([]string, error) {
	var out []string
	for p := range m.translations[lang] {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryLoader) ReadTranslation(lang, path string) (string, error) {
	src, ok := m.translations[lang][path]
	if !ok {
		return "", fmt.Errorf("no such translation: %s/%s", lang, path)
	}
	return src, nil
}

func (m *memoryLoader) ReadLanguageMap() ([]byte, error) {
	if len(m.languageMap) == 0 {
		return nil, os.ErrNotExist
	}
	return m.languageMap, nil
}

// ListLanguages reports the sorted union of languages that have either
// dialogues or translations registered, mirroring what a directory-based
// loader would see as top-level language directories.
func (m *memoryLoader) ListLanguages() ([]string, error) {
	seen := map[string]bool{}
	for lang := range m.dialogues {
		seen[lang] = true
	}
	for lang := range m.translations {
		seen[lang] = true
	}
	var out []string
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out, nil
}

func TestLinkerLinksSimpleProject(t *testing.T) {
	loader := newMemoryLoader()
	loader.languageMap = []byte(`<languages><source code="en"/><translation code="nl"/></languages>`)
	loader.dialogues["en"] = map[string]string{
		"npc": "title: Start\nspeaker: Guard\n---\n[[Go on|Second]]\n===\ntitle: Second\nspeaker: Guard\n---\nThe end.\n",
	}
	loader.translations["nl"] = map[string]string{
		"npc": `{}`,
	}

	l := project.NewLinker(loader, config.DefaultConfig().Parser, nil)
	result, err := l.Link()
	require.NoError(t, err)
	assert.False(t, result.HasErrors())
	assert.Len(t, result.Project.Dialogues, 1)
	assert.Len(t, result.Project.Translations, 1)
}

func TestLinkerReportsUnresolvedInternalReference(t *testing.T) {
	loader := newMemoryLoader()
	loader.languageMap = []byte(`<languages><source code="en"/></languages>`)
	loader.dialogues["en"] = map[string]string{
		"npc": "title: Start\nspeaker: Guard\n---\n[[Go|Nowhere]]\n===\n",
	}

	opts := config.DefaultConfig().Parser
	l := project.NewLinker(loader, opts, nil)
	result, err := l.Link()
	require.NoError(t, err)
	assert.False(t, result.HasErrors())
	assert.NotEmpty(t, result.Warnings)
}

func TestLinkerStrictModeTurnsUnresolvedReferenceIntoError(t *testing.T) {
	loader := newMemoryLoader()
	loader.languageMap = []byte(`<languages><source code="en"/></languages>`)
	loader.dialogues["en"] = map[string]string{
		"npc": "title: Start\nspeaker: Guard\n---\n[[Go|Nowhere]]\n===\n",
	}

	opts := config.DefaultConfig().Parser
	opts.StrictReferenceResolution = true
	l := project.NewLinker(loader, opts, nil)
	result, err := l.Link()
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
}

func TestLinkerInfersLanguagesFromDirectoriesWhenNoDescriptor(t *testing.T) {
	// No languagemap.xml at all: the source language is inferred as the
	// first (sorted) top-level language directory, every other as a
	// translation language (§4.5 step 1).
	loader := newMemoryLoader()
	loader.dialogues["en"] = map[string]string{
		"npc": "title: Start\nspeaker: Guard\n---\nHello.\n===\n",
	}
	loader.translations["nl"] = map[string]string{
		"npc": `{"Hello.":"Hallo."}`,
	}

	l := project.NewLinker(loader, config.DefaultConfig().Parser, nil)
	result, err := l.Link()
	require.NoError(t, err)
	assert.False(t, result.HasErrors())
	assert.Equal(t, "en", result.Project.SourceLanguage)
	assert.Len(t, result.Project.Dialogues, 1)
	assert.Len(t, result.Project.Translations, 1)
}

func TestLinkerRejectsDuplicateLanguageCode(t *testing.T) {
	loader := newMemoryLoader()
	loader.languageMap = []byte(`<languages><source code="en"/><translation code="en"/></languages>`)
	l := project.NewLinker(loader, config.DefaultConfig().Parser, nil)
	_, err := l.Link()
	require.Error(t, err)
}
