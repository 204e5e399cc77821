package model

// Project is the entire set of dialogues and translations across all
// language sets. Invariants (enforced by
// pkg/project's linker, not by this type itself, since constructing a
// Project incrementally while parsing many files is inherently a
// multi-step process):
//   - every translation's FilePath matches a source dialogue's FilePath
//   - every language code is either the declared source language or a
//     declared translation language
type Project struct {
	SourceLanguage string
	Dialogues      map[FileDescription]*Dialogue
	Translations   map[FileDescription]*TranslationMap
}

// NewProject returns an empty Project for the given source language.
func NewProject(sourceLanguage string) *Project {
	return &Project{
		SourceLanguage: sourceLanguage,
		Dialogues:      make(map[FileDescription]*Dialogue),
		Translations:   make(map[FileDescription]*TranslationMap),
	}
}

// DialogueAt returns the source dialogue at the given logical path, looked
// up under the project's source language.
func (p *Project) DialogueAt(filePath string) (*Dialogue, bool) {
	d, ok := p.Dialogues[FileDescription{LanguageCode: p.SourceLanguage, FilePath: filePath}]
	return d, ok
}

// TranslationLanguages returns every language code with at least one
// installed translation map.
func (p *Project) TranslationLanguages() []string {
	seen := make(map[string]bool)
	var out []string
	for fd := range p.Translations {
		if !seen[fd.LanguageCode] {
			seen[fd.LanguageCode] = true
			out = append(out, fd.LanguageCode)
		}
	}
	return out
}
