package project

import (
	"encoding/xml"
	"fmt"

	"github.com/dialoguebranch/dlb-core-go/pkg/dlberr"
	"github.com/dialoguebranch/dlb-core-go/pkg/model"
)

// languageMapXML mirrors the project's languagemap.xml descriptor, parsed
// the same struct-tag-driven way encoding/xml documents are handled
// elsewhere in this codebase.
type languageMapXML struct {
	XMLName      xml.Name      `xml:"languages"`
	SourceLang   languageXML   `xml:"source"`
	Translations []languageXML `xml:"translation"`
}

type languageXML struct {
	Code string `xml:"code,attr"`
	Name string `xml:"name,attr,omitempty"`
}

// LanguageMap is the parsed form of a project's language-map descriptor.
type LanguageMap struct {
	SourceLanguage       string
	TranslationLanguages []string
}

// ParseLanguageMap parses a project's languagemap.xml contents, rejecting
// a translation language that collides with the source language or with
// another translation: a language code may only be declared once.
func ParseLanguageMap(data []byte) (*LanguageMap, error) {
	var raw languageMapXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing language map: %w", err)
	}
	if raw.SourceLang.Code == "" {
		return nil, fmt.Errorf("language map is missing a <source> language")
	}
	source := model.CanonicalLanguageCode(raw.SourceLang.Code)

	seen := map[string]string{source: "source"}
	lm := &LanguageMap{SourceLanguage: source}
	for _, t := range raw.Translations {
		code := model.CanonicalLanguageCode(t.Code)
		if first, dup := seen[code]; dup {
			return nil, &dlberr.DuplicateLanguageCodeError{Code: code, First: first, Again: "translation"}
		}
		seen[code] = "translation"
		lm.TranslationLanguages = append(lm.TranslationLanguages, code)
	}
	return lm, nil
}
